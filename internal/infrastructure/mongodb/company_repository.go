package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre MongoDB.
type CompanyRepo struct {
	companies *mongo.Collection
	workAt    *mongo.Collection
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	if _, err := r.companies.InsertOne(ctx, companyToDocument(c)); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var doc companyDocument
	if err := r.companies.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *CompanyRepo) List(ctx context.Context, f query.Filter) ([]*entity.Company, error) {
	filter, opts := companyListTemplate.build(f)
	cursor, err := r.companies.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []companyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	out := make([]*entity.Company, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res, err := r.companies.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"name":       c.Name,
		"since":      c.Since,
		"updated_at": c.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	return deletedAtOf(ctx, r.companies, id)
}

func (r *CompanyRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return setDeletedAt(ctx, r.companies, id, deletedAt, updatedAt, domain.ErrCompanyNotFound)
}

// Delete elimina la empresa y todas las aristas que apuntan a ella.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.companies.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	if _, err := r.workAt.DeleteMany(ctx, bson.M{"company_id": id}); err != nil {
		return fmt.Errorf("delete company edges: %w", err)
	}
	return nil
}
