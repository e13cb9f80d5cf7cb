package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
)

// ddbListingItem is one row of the listing table: partitioned by
// intent, sorted by listing id, with Domain/Category stored as string
// sets so the structured filter can run a Query + FilterExpression
// within one intent partition instead of a table scan.
type ddbListingItem struct {
	PK       string   `dynamodbav:"PK"`
	SK       string   `dynamodbav:"SK"`
	Domain   []string `dynamodbav:"Domain,stringset,omitempty"`
	Category []string `dynamodbav:"Category,stringset,omitempty"`
	Payload  string   `dynamodbav:"Payload"`
}

// DynamoListingStore implements ListingStore against DynamoDB. Upsert
// is a plain overwrite: re-ingesting a listing id replaces the prior
// canonical Listing.
type DynamoListingStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoListingStore(client *dynamodb.Client, tableName string) *DynamoListingStore {
	return &DynamoListingStore{client: client, tableName: tableName}
}

func intentPK(intent domain.Intent) string {
	return fmt.Sprintf("LISTING#%s", intent)
}

func (s *DynamoListingStore) Upsert(ctx context.Context, l domain.Listing) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return matcherr.Retrieval("failed to serialize listing payload", err)
	}

	item := ddbListingItem{
		PK:       intentPK(l.Intent),
		SK:       l.ID,
		Domain:   l.DomainSlice(),
		Category: l.CategorySlice(),
		Payload:  string(payload),
	}

	itemMap, err := attributevalue.MarshalMap(item)
	if err != nil {
		return matcherr.Retrieval("failed to marshal listing item", err)
	}
	// Empty string sets marshal to an empty list, which DynamoDB
	// rejects; drop the attribute entirely when there is nothing to
	// index (mutual listings carry no domain, product/service carry
	// no category).
	if len(item.Domain) == 0 {
		delete(itemMap, "Domain")
	}
	if len(item.Category) == 0 {
		delete(itemMap, "Category")
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      itemMap,
	})
	if err != nil {
		return translateAWSErr("failed to upsert listing", err)
	}
	return nil
}

// translateAWSErr surfaces the smithy API error code in the message
// when the failure came back from the service, so operators see
// ProvisionedThroughputExceededException rather than a bare wrapper.
func translateAWSErr(msg string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return matcherr.Retrieval(fmt.Sprintf("%s: %s", msg, apiErr.ErrorCode()), err)
	}
	return matcherr.Retrieval(msg, err)
}

func (s *DynamoListingStore) Get(ctx context.Context, id string) (domain.Listing, error) {
	// The listing id alone doesn't carry its intent, so the Get path
	// has to try each partition; ingest is the only caller that knows
	// intent up front, and it already has the Listing in hand.
	for _, intent := range []domain.Intent{domain.IntentProduct, domain.IntentService, domain.IntentMutual} {
		out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: intentPK(intent)},
				"SK": &types.AttributeValueMemberS{Value: id},
			},
		})
		if err != nil {
			return domain.Listing{}, translateAWSErr("failed to get listing", err)
		}
		if out.Item == nil {
			continue
		}
		var item ddbListingItem
		if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
			return domain.Listing{}, matcherr.Retrieval("failed to unmarshal listing item", err)
		}
		var l domain.Listing
		if err := json.Unmarshal([]byte(item.Payload), &l); err != nil {
			return domain.Listing{}, matcherr.Retrieval("failed to deserialize listing payload", err)
		}
		return l, nil
	}
	return domain.Listing{}, matcherr.Retrieval("listing not found: "+id, nil)
}

func (s *DynamoListingStore) QueryByDomainOrCategory(ctx context.Context, intent domain.Intent, terms []string) ([]ListingPoint, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(intentPK(intent)))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if len(terms) > 0 {
		attr := "Domain"
		if intent == domain.IntentMutual {
			attr = "Category"
		}
		var filter expression.ConditionBuilder
		for i, term := range terms {
			cond := expression.Contains(expression.Name(attr), term)
			if i == 0 {
				filter = cond
			} else {
				filter = filter.Or(cond)
			}
		}
		builder = builder.WithFilter(filter)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, matcherr.Retrieval("failed to build structured filter expression", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, translateAWSErr("failed to query listings by domain/category", err)
	}

	points := make([]ListingPoint, 0, len(out.Items))
	for _, rawItem := range out.Items {
		var item ddbListingItem
		if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
			return nil, matcherr.Retrieval("failed to unmarshal listing item", err)
		}
		points = append(points, ListingPoint{ID: item.SK, Intent: intent, Domain: item.Domain, Category: item.Category})
	}
	return points, nil
}
