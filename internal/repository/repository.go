// Package repository contains the data access layer. A generic base covers
// the CRUD surface shared by every resource; each typed repository embeds it
// and adds only its own queries.
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository implements the create/read/update/delete/list/count surface
// shared by all resources. Preloads and list ordering vary per resource and
// are fixed at construction.
type Repository[T any] struct {
	db        *gorm.DB
	preloads  []string
	listOrder string
}

func newRepository[T any](db *gorm.DB, listOrder string, preloads ...string) Repository[T] {
	return Repository[T]{db: db, preloads: preloads, listOrder: listOrder}
}

func (r *Repository[T]) withPreloads(ctx context.Context) *gorm.DB {
	query := r.db.WithContext(ctx)
	for _, preload := range r.preloads {
		query = query.Preload(preload)
	}
	return query
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.withPreloads(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	err := r.withPreloads(ctx).Order(r.listOrder).Find(&entities).Error
	return entities, err
}

func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return int(count), err
}
