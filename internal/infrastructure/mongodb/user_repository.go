package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
)

var userUniqueFields = map[string]string{
	entity.FieldEmail: "email",
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre MongoDB.
type UserRepo struct {
	users  *mongo.Collection
	workAt *mongo.Collection
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.users.InsertOne(ctx, userToDocument(u)); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepo) List(ctx context.Context, f query.Filter) ([]*entity.User, error) {
	filter, opts := userListTemplate.build(f)
	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return usersFromDocuments(docs), nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.PasswordHash,
		"avatar":     u.Avatar,
		"updated_at": u.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) DeletedAt(ctx context.Context, id string) (*time.Time, bool, error) {
	return deletedAtOf(ctx, r.users, id)
}

func (r *UserRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return setDeletedAt(ctx, r.users, id, deletedAt, updatedAt, domain.ErrUserNotFound)
}

// Delete elimina el usuario y su arista. Sin transacción: si falla el segundo paso queda una arista
// huérfana que las consultas de relación ignoran ($lookup sin coincidencia).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	if _, err := r.workAt.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user edges: %w", err)
	}
	return nil
}

func (r *UserRepo) CountByField(ctx context.Context, field, value, excludingID string) (int64, error) {
	name, ok := userUniqueFields[field]
	if !ok {
		return 0, fmt.Errorf("count users: campo no permitido %q", field)
	}
	n, err := r.users.CountDocuments(ctx, bson.M{name: value, "_id": bson.M{"$ne": excludingID}})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ── Helpers de ciclo de vida compartidos con CompanyRepo ─────────────────────

func deletedAtOf(ctx context.Context, coll *mongo.Collection, id string) (*time.Time, bool, error) {
	var doc struct {
		DeletedAt *time.Time `bson:"deleted_at,omitempty"`
	}
	err := coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"deleted_at": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s state: %w", coll.Name(), err)
	}
	return utcPtr(doc.DeletedAt), true, nil
}

func setDeletedAt(ctx context.Context, coll *mongo.Collection, id string, deletedAt *time.Time, updatedAt time.Time, notFound error) error {
	update := bson.M{"$set": bson.M{"updated_at": updatedAt}}
	if deletedAt != nil {
		update["$set"] = bson.M{"updated_at": updatedAt, "deleted_at": *deletedAt}
	} else {
		update["$unset"] = bson.M{"deleted_at": ""}
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set %s deleted_at: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}
