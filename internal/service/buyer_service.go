package service

import (
	"time"

	"github.com/google/uuid"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
)

type BuyerService interface {
	CreateBuyer(req *BuyerRequest, actor stock.Actor) (*model.Buyer, error)
	UpdateBuyer(id uuid.UUID, req *BuyerRequest, actor stock.Actor) (*model.Buyer, error)
	DeleteBuyer(id uuid.UUID, actor stock.Actor) error
	GetAllBuyers(search string) ([]model.Buyer, error)
	GetBuyer(id uuid.UUID) (*model.Buyer, error)
}

type BuyerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=1000"`
}

type buyerService struct {
	repo repository.BuyerRepository
	now  func() time.Time
}

func NewBuyerService(repo repository.BuyerRepository) BuyerService {
	return &buyerService{repo: repo, now: time.Now}
}

func (s *buyerService) CreateBuyer(req *BuyerRequest, actor stock.Actor) (*model.Buyer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	buyer := &model.Buyer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
		JoinDate: s.now(),
	}
	buyer.CreatedBy = actor.Ref()
	buyer.UpdatedBy = actor.Ref()

	if err := s.repo.Create(buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

func (s *buyerService) UpdateBuyer(id uuid.UUID, req *BuyerRequest, actor stock.Actor) (*model.Buyer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	buyer, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrBuyerNotFound)
	}

	buyer.Name = req.Name
	buyer.Email = req.Email
	buyer.Phone = req.Phone
	buyer.Address = req.Address
	buyer.UpdatedBy = actor.Ref()

	if err := s.repo.Update(buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

func (s *buyerService) DeleteBuyer(id uuid.UUID, actor stock.Actor) error {
	return lookup(s.repo.Delete(id, actor.Ref()), ErrBuyerNotFound)
}

func (s *buyerService) GetAllBuyers(search string) ([]model.Buyer, error) {
	return s.repo.FindAll(search)
}

func (s *buyerService) GetBuyer(id uuid.UUID) (*model.Buyer, error) {
	buyer, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrBuyerNotFound)
	}
	return buyer, nil
}
