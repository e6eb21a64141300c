package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"contactkeeper/application/ports"
	"contactkeeper/domain/contact"
	"contactkeeper/domain/user"
)

// ContactRepository implements ports.ContactRepository on a single
// DynamoDB table. Items are keyed so that a descending query over a
// user's partition yields contacts newest first, and GSI1 resolves a
// contact directly by id.
type ContactRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ContactRepository {
	return &ContactRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// contactItem is the DynamoDB item shape for a contact
type contactItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI1PK      string `dynamodbav:"GSI1PK"`
	GSI1SK      string `dynamodbav:"GSI1SK"`
	EntityType  string `dynamodbav:"EntityType"`
	ContactID   string `dynamodbav:"ContactID"`
	UserID      string `dynamodbav:"UserID"`
	Name        string `dynamodbav:"Name"`
	Email       string `dynamodbav:"Email"`
	Phone       string `dynamodbav:"Phone"`
	ContactType string `dynamodbav:"ContactType"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
}

func contactPK(owner user.ID) string {
	return fmt.Sprintf("USER#%s", owner)
}

// contactSK embeds the creation instant ahead of the id so lexicographic
// sort order is creation order
func contactSK(c *contact.Contact) string {
	return fmt.Sprintf("CONTACT#%020d#%s", c.CreatedAt.UnixNano(), c.ID)
}

func toContactItem(c *contact.Contact) contactItem {
	return contactItem{
		PK:          contactPK(c.UserID),
		SK:          contactSK(c),
		GSI1PK:      fmt.Sprintf("CONTACT#%s", c.ID),
		GSI1SK:      "METADATA",
		EntityType:  "CONTACT",
		ContactID:   c.ID.String(),
		UserID:      c.UserID.String(),
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		ContactType: string(c.Type),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339Nano),
	}
}

func fromContactItem(item contactItem) (*contact.Contact, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad CreatedAt on contact %s: %w", item.ContactID, err)
	}
	return &contact.Contact{
		ID:        contact.ID(item.ContactID),
		UserID:    user.ID(item.UserID),
		Name:      item.Name,
		Email:     item.Email,
		Phone:     item.Phone,
		Type:      contact.Type(item.ContactType),
		CreatedAt: createdAt,
	}, nil
}

// Save persists a new contact
func (r *ContactRepository) Save(ctx context.Context, c *contact.Contact) error {
	av, err := attributevalue.MarshalMap(toContactItem(c))
	if err != nil {
		return fmt.Errorf("failed to marshal contact: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}

	r.logger.Debug("saved contact",
		zap.String("contactID", c.ID.String()),
		zap.String("userID", c.UserID.String()),
	)
	return nil
}

// FindByID retrieves a contact by id through GSI1. Returns (nil, nil)
// when the id is unknown.
func (r *ContactRepository) FindByID(ctx context.Context, id contact.ID) (*contact.Contact, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONTACT#%s", id)},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	var item contactItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
	}
	return fromContactItem(item)
}

// FindByUser returns all contacts owned by the user, newest first
func (r *ContactRepository) FindByUser(ctx context.Context, owner user.ID) ([]*contact.Contact, error) {
	contacts := []*contact.Contact{}

	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: contactPK(owner)},
				":sk": &types.AttributeValueMemberS{Value: "CONTACT#"},
			},
			// SK sorts by creation instant; descending gives newest first
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query contacts: %w", err)
		}

		for _, raw := range result.Items {
			var item contactItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
			}
			c, err := fromContactItem(item)
			if err != nil {
				return nil, err
			}
			contacts = append(contacts, c)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return contacts, nil
}

// Update applies a partial patch with a SET expression and returns the
// updated record. Concurrent updates are last-writer-wins per field map;
// DynamoDB's per-item atomicity is the only coordination.
func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact, patch contact.Update) (*contact.Contact, error) {
	if patch.Empty() {
		return c, nil
	}
	// Validate the patch against domain rules before touching the store
	probe := *c
	if err := probe.Apply(patch); err != nil {
		return nil, err
	}

	update := expression.UpdateBuilder{}
	if patch.Name != nil {
		update = update.Set(expression.Name("Name"), expression.Value(probe.Name))
	}
	if patch.Email != nil {
		update = update.Set(expression.Name("Email"), expression.Value(probe.Email))
	}
	if patch.Phone != nil {
		update = update.Set(expression.Name("Phone"), expression.Value(probe.Phone))
	}
	if patch.Type != nil {
		update = update.Set(expression.Name("ContactType"), expression.Value(string(probe.Type)))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: contactPK(c.UserID)},
			"SK": &types.AttributeValueMemberS{Value: contactSK(c)},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	var item contactItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated contact: %w", err)
	}

	r.logger.Debug("updated contact",
		zap.String("contactID", c.ID.String()),
		zap.String("userID", c.UserID.String()),
	)
	return fromContactItem(item)
}

// Delete removes a contact permanently
func (r *ContactRepository) Delete(ctx context.Context, c *contact.Contact) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: contactPK(c.UserID)},
			"SK": &types.AttributeValueMemberS{Value: contactSK(c)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	r.logger.Debug("deleted contact",
		zap.String("contactID", c.ID.String()),
		zap.String("userID", c.UserID.String()),
	)
	return nil
}
