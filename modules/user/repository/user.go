package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libreria/modules/user/model"
	"libreria/util/errs"
	"libreria/util/storage/sqldb/transactor"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	dbCtx transactor.DBTXContext
}

func NewUserRepository(dbCtx transactor.DBTXContext) UserRepository {
	return &userRepository{
		dbCtx: dbCtx,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
	INSERT INTO public.users (name, email)
	VALUES ($1, $2)
	RETURNING *
	`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.dbCtx(ctx).
		QueryRowxContext(ctx, query, user.Name, user.Email).
		StructScan(user)
	if err != nil {
		return errs.HandleDBError(fmt.Errorf("an error occurred while inserting a user: %w", err))
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
	SELECT *
	FROM public.users
	WHERE id = $1
`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user model.User
	err := r.dbCtx(ctx).QueryRowxContext(ctx, query, id).StructScan(&user)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while finding a user by id: %w", err))
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	query := `
	SELECT *
	FROM public.users
	ORDER BY id
`
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	users := []model.User{}
	err := r.dbCtx(ctx).SelectContext(ctx, &users, query)
	if err != nil {
		return nil, errs.HandleDBError(fmt.Errorf("an error occurred while listing users: %w", err))
	}
	return users, nil
}
