package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mailforge/template-service/internal/core/domain"
)

const templatesCollection = "templates"

// TemplateRepository persists templates in MongoDB. Every query filter
// includes the owner id, so a template belonging to another user behaves
// exactly like one that does not exist.
type TemplateRepository struct {
	coll *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(templatesCollection)}
}

type mongoTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Name      string             `bson:"template_name"`
	Subject   string             `bson:"subject"`
	Body      string             `bson:"body"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mt mongoTemplate) toDomain() domain.Template {
	return domain.Template{
		ID:        mt.ID.Hex(),
		OwnerID:   mt.OwnerID,
		Name:      mt.Name,
		Subject:   mt.Subject,
		Body:      mt.Body,
		CreatedAt: mt.CreatedAt.UTC(),
		UpdatedAt: mt.UpdatedAt.UTC(),
	}
}

// ownedFilter builds the {_id, owner_id} filter shared by every id-addressed
// operation. A malformed id can never match, so it reports not-found.
func ownedFilter(ownerID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTemplateNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

func (r *TemplateRepository) Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoTemplate{
		OwnerID:   tpl.OwnerID,
		Name:      tpl.Name,
		Subject:   tpl.Subject,
		Body:      tpl.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	return &created, nil
}

func (r *TemplateRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Template
	for cur.Next(ctx) {
		var mt mongoTemplate
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode template: %w", err)
		}
		out = append(out, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Template, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTemplate
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	tpl := mt.toDomain()
	return &tpl, nil
}

// Update replaces the three content fields in a single $set, so readers see
// either the old or the new content, never a mix.
func (r *TemplateRepository) Update(ctx context.Context, ownerID, id, name, subject, body string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"template_name": name,
		"subject":       subject,
		"body":          body,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every template query.
func (r *TemplateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
