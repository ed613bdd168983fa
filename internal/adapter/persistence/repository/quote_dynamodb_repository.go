package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const defaultQuotesTableName = "quotes"

type pricingItemAttr struct {
	Name  string `dynamodbav:"name"`
	Price string `dynamodbav:"price"`
	PST   bool   `dynamodbav:"pst"`
	GST   bool   `dynamodbav:"gst"`
}

type optionalServiceAttr struct {
	Service string `dynamodbav:"service"`
	Price   string `dynamodbav:"price"`
}

type sectionImageAttr struct {
	ID       string `dynamodbav:"id"`
	AssetRef string `dynamodbav:"asset_ref"`
	Caption  string `dynamodbav:"caption"`
}

type sectionAttr struct {
	Type   string             `dynamodbav:"type"`
	Title  string             `dynamodbav:"title"`
	Body   string             `dynamodbav:"body,omitempty"`
	Images []sectionImageAttr `dynamodbav:"images,omitempty"`
}

type quoteItem struct {
	ID        string `dynamodbav:"id"`
	Number    string `dynamodbav:"number"`
	ProjectID string `dynamodbav:"project_id"`

	Title        string `dynamodbav:"title"`
	Client       string `dynamodbav:"client"`
	ContactEmail string `dynamodbav:"contact_email"`
	ContactPhone string `dynamodbav:"contact_phone"`
	Address      string `dynamodbav:"address"`
	IssueDate    string `dynamodbav:"issue_date"`
	ExpiryDate   string `dynamodbav:"expiry_date"`
	Notes        string `dynamodbav:"notes"`
	Status       string `dynamodbav:"status"`

	Items            []pricingItemAttr     `dynamodbav:"items"`
	OptionalServices []optionalServiceAttr `dynamodbav:"optional_services"`
	Sections         []sectionAttr         `dynamodbav:"sections"`

	PricingMode string `dynamodbav:"pricing_mode"`
	PSTRate     string `dynamodbav:"pst_rate"`
	GSTRate     string `dynamodbav:"gst_rate"`
	MarkupRate  string `dynamodbav:"markup_rate"`
	EstimateID  string `dynamodbav:"estimate_id,omitempty"`

	DisplayTotal string `dynamodbav:"display_total"`
	ShowPSTInPDF bool   `dynamodbav:"show_pst_in_pdf"`
	ShowGSTInPDF bool   `dynamodbav:"show_gst_in_pdf"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Save semantics:
//   - no ID yet: a UUID is assigned and the item is created with an
//     attribute_not_exists condition
//   - existing ID: the item is replaced in full (the editor always saves
//     the whole document)
//
// Legacy estimate-variant sections are filtered here as well, so nothing
// that bypasses the session layer can persist them.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Save(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	creating := q.ID == ""
	if creating {
		q.ID = uuid.NewString()
	}

	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}
	if creating {
		input.ConditionExpression = aws.String("attribute_not_exists(#id)")
		input.ExpressionAttributeNames = map[string]string{"#id": "id"}
	}

	if _, err := r.ddb.PutItem(ctx, input); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) UpdateStatusByID(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	sections := q.PersistableSections()
	secAttrs := make([]sectionAttr, 0, len(sections))
	for _, s := range sections {
		sa := sectionAttr{Type: string(s.Type), Title: s.Title, Body: s.Body}
		for _, img := range s.Images {
			sa.Images = append(sa.Images, sectionImageAttr(img))
		}
		secAttrs = append(secAttrs, sa)
	}

	items := make([]pricingItemAttr, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, pricingItemAttr(it))
	}
	services := make([]optionalServiceAttr, 0, len(q.OptionalServices))
	for _, svc := range q.OptionalServices {
		services = append(services, optionalServiceAttr(svc))
	}

	return quoteItem{
		ID:               q.ID,
		Number:           q.Number,
		ProjectID:        q.ProjectID,
		Title:            q.Title,
		Client:           q.Client,
		ContactEmail:     q.ContactEmail,
		ContactPhone:     q.ContactPhone,
		Address:          q.Address,
		IssueDate:        q.IssueDate,
		ExpiryDate:       q.ExpiryDate,
		Notes:            q.Notes,
		Status:           string(q.Status),
		Items:            items,
		OptionalServices: services,
		Sections:         secAttrs,
		PricingMode:      string(q.PricingMode),
		PSTRate:          floatToString(q.PSTRate),
		GSTRate:          floatToString(q.GSTRate),
		MarkupRate:       floatToString(q.MarkupRate),
		EstimateID:       q.EstimateID,
		DisplayTotal:     q.DisplayTotal,
		ShowPSTInPDF:     q.ShowPSTInPDF(),
		ShowGSTInPDF:     q.ShowGSTInPDF(),
		CreatedAt:        q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	pstRate, _ := strconv.ParseFloat(it.PSTRate, 64)
	gstRate, _ := strconv.ParseFloat(it.GSTRate, 64)
	markupRate, _ := strconv.ParseFloat(it.MarkupRate, 64)

	items := make([]entities.PricingItem, 0, len(it.Items))
	for _, pi := range it.Items {
		items = append(items, entities.PricingItem(pi))
	}
	services := make([]entities.OptionalService, 0, len(it.OptionalServices))
	for _, svc := range it.OptionalServices {
		services = append(services, entities.OptionalService(svc))
	}
	sections := make([]entities.Section, 0, len(it.Sections))
	for _, sa := range it.Sections {
		sec := entities.Section{Type: entities.SectionType(sa.Type), Title: sa.Title, Body: sa.Body}
		for _, img := range sa.Images {
			sec.Images = append(sec.Images, entities.SectionImage(img))
		}
		sections = append(sections, sec)
	}

	return entities.Quote{
		ID:               it.ID,
		Number:           it.Number,
		ProjectID:        it.ProjectID,
		Title:            it.Title,
		Client:           it.Client,
		ContactEmail:     it.ContactEmail,
		ContactPhone:     it.ContactPhone,
		Address:          it.Address,
		IssueDate:        it.IssueDate,
		ExpiryDate:       it.ExpiryDate,
		Notes:            it.Notes,
		Status:           entities.QuoteStatus(it.Status),
		Items:            items,
		OptionalServices: services,
		Sections:         sections,
		PricingMode:      entities.PricingMode(it.PricingMode),
		PSTRate:          pstRate,
		GSTRate:          gstRate,
		MarkupRate:       markupRate,
		EstimateID:       it.EstimateID,
		DisplayTotal:     it.DisplayTotal,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
