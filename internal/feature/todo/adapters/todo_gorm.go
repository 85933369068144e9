// Package adapters provides repository implementations for the todo feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

type todoGorm struct {
	db *gorm.DB
}

var _ usecase.TodoRepository = (*todoGorm)(nil)

// NewTodoRepository creates a GORM-backed TodoRepository.
func NewTodoRepository(db *gorm.DB) *todoGorm {
	return &todoGorm{db: db}
}

// TodoModel maps the todos table. The foreign key to users with
// ON DELETE CASCADE is declared in the migrations.
type TodoModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (TodoModel) TableName() string {
	return "todos"
}

func toModel(e *entity.Todo) TodoModel {
	return TodoModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		Completed:   e.Completed,
		CreatedAt:   e.CreatedAt,
	}
}

func (m TodoModel) toEntity() entity.Todo {
	return entity.Todo{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *todoGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error) {
	var ms []TodoModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Todo, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *todoGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	m, err := findOwned(r.db.WithContext(ctx), userID, id)
	if err != nil {
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

func (r *todoGorm) Create(ctx context.Context, todo *entity.Todo) error {
	m := toModel(todo)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*todo = m.toEntity()
	return nil
}

// Update runs the ownership check and the write in one transaction and
// re-reads the row, since RowsAffected is 0 on MySQL when values are unchanged.
func (r *todoGorm) Update(ctx context.Context, userID, id uint, patch entity.Patch) (*entity.Todo, error) {
	var out entity.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if patch.Title != nil {
			fields["title"] = *patch.Title
		}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if patch.Completed != nil {
			fields["completed"] = *patch.Completed
		}
		if len(fields) > 0 {
			if err := tx.Model(&TodoModel{}).Where("id = ? AND user_id = ?", id, userID).Updates(fields).Error; err != nil {
				return err
			}
		}

		m, err = findOwned(tx, userID, id)
		if err != nil {
			return err
		}
		out = m.toEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *todoGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&TodoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	return nil
}

func findOwned(db *gorm.DB, userID, id uint) (*TodoModel, error) {
	var m TodoModel
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTodoNotFound
		}
		return nil, err
	}
	return &m, nil
}
