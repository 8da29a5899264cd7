package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

var _ repository.EmploymentRepository = (*EmploymentRepo)(nil)

// EmploymentRepo recorre la colección work_at con $lookup hacia users y companies.
type EmploymentRepo struct {
	db *mongo.Database
}

func (r *EmploymentRepo) workAt() *mongo.Collection { return r.db.Collection(workAtCollection) }

// Employ reemplaza (upsert) la arista del usuario tras comprobar que ambos extremos existen.
func (r *EmploymentRepo) Employ(ctx context.Context, e *entity.Employment) error {
	for coll, id := range map[string]string{usersCollection: e.UserID, companiesCollection: e.CompanyID} {
		n, err := r.db.Collection(coll).CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("employ: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("employ: %s %s: %w", coll, id, domain.ErrNotFound)
		}
	}
	doc := workAtDocument{UserID: e.UserID, CompanyID: e.CompanyID, Since: e.Since, Position: e.Position}
	_, err := r.workAt().ReplaceOne(ctx, bson.M{"_id": e.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("employ: %w", err)
	}
	return nil
}

func (r *EmploymentRepo) Dismiss(ctx context.Context, userID string) (bool, error) {
	res, err := r.workAt().DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, fmt.Errorf("dismiss: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *EmploymentRepo) CompanyOf(ctx context.Context, userID string) (*entity.Company, error) {
	cursor, err := r.workAt().Aggregate(ctx, companyOfPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("company of user: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []companyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode company: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0].toEntity(), nil
}

func (r *EmploymentRepo) UsersOf(ctx context.Context, companyID string) ([]*entity.User, error) {
	return r.aggregateUsers(ctx, employeesPipeline(companyID, ""))
}

func (r *EmploymentRepo) ColleaguesOf(ctx context.Context, userID string) ([]*entity.User, error) {
	var edge workAtDocument
	if err := r.workAt().FindOne(ctx, bson.M{"_id": userID}).Decode(&edge); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*entity.User{}, nil
		}
		return nil, fmt.Errorf("colleagues of user: %w", err)
	}
	return r.aggregateUsers(ctx, employeesPipeline(edge.CompanyID, userID))
}

func (r *EmploymentRepo) aggregateUsers(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.User, error) {
	cursor, err := r.workAt().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return usersFromDocuments(docs), nil
}

func companyOfPipeline(userID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         companiesCollection,
			"localField":   "company_id",
			"foreignField": "_id",
			"as":           "company",
		}}},
		{{Key: "$unwind", Value: "$company"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$company"}}},
		{{Key: "$limit", Value: 1}},
	}
}

// employeesPipeline usuarios con arista hacia companyID, excluyendo exclude si no es vacío.
func employeesPipeline(companyID, exclude string) mongo.Pipeline {
	match := bson.M{"company_id": companyID}
	if exclude != "" {
		match["_id"] = bson.M{"$ne": exclude}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$user"}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}
