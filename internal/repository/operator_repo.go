package repository

import (
	"time"

	"go-order-desk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperatorRepository interface {
	FindByEmail(email string) (*model.Operator, error)
	FindByID(id uuid.UUID) (*model.Operator, error)
	Create(operator *model.Operator) error
	UpdatePassword(id uuid.UUID, hashedPassword string) error
	UpdateLastLogin(id uuid.UUID) error
	UpdateActive(id uuid.UUID, active bool) error
}

type operatorRepo struct {
	db *gorm.DB
}

func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db}
}

func (r *operatorRepo) FindByEmail(email string) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.Where("email = ?", email).First(&operator).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepo) FindByID(id uuid.UUID) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepo) Create(operator *model.Operator) error {
	return r.db.Create(operator).Error
}

func (r *operatorRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Operator{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *operatorRepo) UpdateLastLogin(id uuid.UUID) error {
	return r.db.Model(&model.Operator{}).Where("id = ?", id).Update("last_login_at", time.Now()).Error
}

func (r *operatorRepo) UpdateActive(id uuid.UUID, active bool) error {
	return r.db.Model(&model.Operator{}).Where("id = ?", id).Update("is_active", active).Error
}
