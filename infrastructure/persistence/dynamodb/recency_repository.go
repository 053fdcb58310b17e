package dynamodb

import (
	"context"
	"fmt"
	"time"

	"arcana-backend/application/ports"
	"arcana-backend/domain/config"
	"arcana-backend/infrastructure/persistence"
	pkgerrors "arcana-backend/pkg/errors"
	"arcana-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error)
}

// RecencyRepository implements the recency port using DynamoDB.
//
// Single-table layout: PK=PROFILE#<id>, SK=DRAW#<iso-day>. A PutItem on the
// same (profile, day) key overwrites, which gives the idempotent-record
// semantics for free, and a TTL attribute lets DynamoDB expire entries past
// the retention window on its own.
type RecencyRepository struct {
	client    DynamoDBAPI
	tableName string
	config    *config.DomainConfig
	logger    *zap.Logger
}

// NewRecencyRepository creates a new DynamoDB-backed recency repository
func NewRecencyRepository(
	client DynamoDBAPI,
	tableName string,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *RecencyRepository {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecencyRepository{
		client:    client,
		tableName: tableName,
		config:    cfg,
		logger:    logger,
	}
}

// recencyItem is the DynamoDB item structure for one remembered draw
type recencyItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	ProfileID  string `dynamodbav:"ProfileID"`
	Day        string `dynamodbav:"Day"`
	CardName   string `dynamodbav:"CardName"`
	ExpiresAt  int64  `dynamodbav:"ExpiresAt"`
}

func profileKey(profileID string) string { return "PROFILE#" + profileID }
func drawKey(dayKey string) string       { return "DRAW#" + dayKey }

// Record persists the selection for (profile, calendar day), overwriting any
// existing entry for that day.
func (r *RecencyRepository) Record(ctx context.Context, profileID, cardName string, date time.Time) error {
	dayKey := utils.DayKey(date)
	item := recencyItem{
		PK:         profileKey(profileID),
		SK:         drawKey(dayKey),
		EntityType: "RECENCY",
		ProfileID:  profileID,
		Day:        dayKey,
		CardName:   cardName,
		ExpiresAt:  utils.StartOfDay(date).AddDate(0, 0, r.config.RetentionDays+1).Unix(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewInternalError("marshal recency item", err)
	}

	_, err = r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("record selection", err)
	}
	return nil
}

// RecentSelections queries the trailing retention window, most recent first.
// Corrupt items are skipped: a broken row reads as no history rather than a
// failed selection.
func (r *RecencyRepository) RecentSelections(ctx context.Context, profileID string, reference time.Time) ([]ports.Selection, error) {
	windowStart := utils.StartOfDay(reference).AddDate(0, 0, -r.config.RetentionDays)

	output, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND SK BETWEEN :start AND :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: profileKey(profileID)},
			":start": &types.AttributeValueMemberS{Value: drawKey(utils.DayKey(windowStart))},
			":end":   &types.AttributeValueMemberS{Value: drawKey(utils.DayKey(reference))},
		},
		ScanIndexForward: aws.Bool(false), // newest day first
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query recent selections", err)
	}

	selections := make([]ports.Selection, 0, len(output.Items))
	for _, raw := range output.Items {
		var item recencyItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping corrupt recency item", zap.Error(err))
			continue
		}
		day, err := utils.ParseDayKey(item.Day)
		if err != nil {
			r.logger.Warn("skipping recency item with bad day key",
				zap.String("day", item.Day), zap.Error(err))
			continue
		}
		daysAgo := utils.DaysBetween(day, reference)
		if daysAgo < 0 || daysAgo > r.config.RetentionDays {
			continue
		}
		selections = append(selections, ports.Selection{CardName: item.CardName, DaysAgo: daysAgo})
	}
	return selections, nil
}

// DecayPenalty returns the decay multiplier for a card within the window.
// A store failure reads as 1.0 (no history).
func (r *RecencyRepository) DecayPenalty(ctx context.Context, profileID, cardName string, reference time.Time) float64 {
	selections, err := r.RecentSelections(ctx, profileID, reference)
	if err != nil {
		r.logger.Warn("decay penalty falling back to 1.0",
			zap.String("profileID", profileID), zap.Error(err))
		return 1.0
	}
	return persistence.DecayMultiplier(selections, cardName, r.config)
}

// PurgeExpired deletes entries older than the retention window. The TTL
// attribute already bounds growth; this keeps the window tight between TTL
// sweeps.
func (r *RecencyRepository) PurgeExpired(ctx context.Context, profileID string, reference time.Time) error {
	windowStart := utils.StartOfDay(reference).AddDate(0, 0, -r.config.RetentionDays)

	return r.deleteByQuery(ctx, "expired selections", &awsdynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND SK < :start"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: profileKey(profileID)},
			":start": &types.AttributeValueMemberS{Value: drawKey(utils.DayKey(windowStart))},
		},
		ProjectionExpression: aws.String("PK, SK"),
	})
}

// Clear removes all entries for a profile
func (r *RecencyRepository) Clear(ctx context.Context, profileID string) error {
	return r.deleteByQuery(ctx, "profile selections", &awsdynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: profileKey(profileID)},
		},
		ProjectionExpression: aws.String("PK, SK"),
	})
}

// deleteByQuery deletes every item the query matches, following
// LastEvaluatedKey so result sets beyond a single page are not missed.
func (r *RecencyRepository) deleteByQuery(ctx context.Context, what string, input *awsdynamodb.QueryInput) error {
	for {
		output, err := r.client.Query(ctx, input)
		if err != nil {
			return pkgerrors.NewDatabaseError("query "+what, err)
		}

		for _, raw := range output.Items {
			pk, sk, ok := extractKeys(raw)
			if !ok {
				continue
			}
			if _, err := r.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: pk},
					"SK": &types.AttributeValueMemberS{Value: sk},
				},
			}); err != nil {
				return pkgerrors.NewDatabaseError(fmt.Sprintf("delete %s %s", what, sk), err)
			}
		}

		if output.LastEvaluatedKey == nil {
			return nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

func extractKeys(raw map[string]types.AttributeValue) (pk, sk string, ok bool) {
	pkAttr, pkOK := raw["PK"].(*types.AttributeValueMemberS)
	skAttr, skOK := raw["SK"].(*types.AttributeValueMemberS)
	if !pkOK || !skOK {
		return "", "", false
	}
	return pkAttr.Value, skAttr.Value, true
}
