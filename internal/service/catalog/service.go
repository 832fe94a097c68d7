package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// Service реализует каталог: CRUD и поиск по клиентам и товарам.
// Сервис не трогает ни остатки в ходе продаж, ни накопленные суммы —
// это территория движка проведения.
type Service struct {
	repo   domain.CatalogRepository
	clock  domain.Clock
	logger *log.Entry
}

// NewService создаёт сервис каталога с явными зависимостями.
func NewService(repo domain.CatalogRepository, clock domain.Clock, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// AddClient регистрирует нового клиента и возвращает его идентификатор.
func (s *Service) AddClient(name, contact, email string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}

	inUse, err := s.repo.EmailInUse(email, "")
	if err != nil {
		return "", err
	}
	if inUse {
		return "", domain.ErrEmailTaken
	}

	client := domain.Client{
		ID:            uuid.NewString(),
		Name:          name,
		Contact:       contact,
		Email:         email,
		LifetimeSpend: decimal.Zero,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.CreateClient(client); err != nil {
		return "", err
	}

	s.logger.WithFields(log.Fields{
		"client_id": client.ID,
		"name":      client.Name,
	}).Info("client added")

	return client.ID, nil
}

// UpdateClient меняет имя, контакт и email клиента. Проверка уникальности
// email исключает саму запись: клиент может пересохранить собственный email.
func (s *Service) UpdateClient(id, name, contact, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrNameRequired
	}

	inUse, err := s.repo.EmailInUse(email, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrEmailTaken
	}

	if err := s.repo.UpdateClient(domain.Client{
		ID:      id,
		Name:    name,
		Contact: contact,
		Email:   email,
	}); err != nil {
		return err
	}

	s.logger.WithField("client_id", id).Info("client updated")
	return nil
}

// DeleteClient удаляет клиента, если на него не ссылаются заказы.
func (s *Service) DeleteClient(id string) error {
	if err := s.repo.DeleteClient(id); err != nil {
		return err
	}
	s.logger.WithField("client_id", id).Info("client deleted")
	return nil
}

// FindClients возвращает клиентов по подстроке имени, контакта или email.
func (s *Service) FindClients(search string) ([]domain.Client, error) {
	return s.repo.FindClients(strings.TrimSpace(search))
}

// EmailRegistered сообщает, занят ли email. Пустой email всегда свободен.
func (s *Service) EmailRegistered(email string) (bool, error) {
	return s.repo.EmailInUse(email, "")
}

// AddItem добавляет товар и возвращает его идентификатор.
func (s *Service) AddItem(name string, quantity int64, costPrice, sellingPrice decimal.Decimal) (string, error) {
	item := domain.Item{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Quantity:     quantity,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		CreatedAt:    s.clock.Now(),
	}
	if errs := item.ValidateInvariants(); len(errs) > 0 {
		return "", errs[0]
	}

	if err := s.repo.CreateItem(item); err != nil {
		return "", err
	}

	s.logger.WithFields(log.Fields{
		"item_id":  item.ID,
		"name":     item.Name,
		"quantity": item.Quantity,
	}).Info("item added")

	return item.ID, nil
}

// UpdateItem перезаписывает карточку товара, включая остаток.
// Каталог — единственный писатель остатка помимо движка проведения.
func (s *Service) UpdateItem(id, name string, quantity int64, costPrice, sellingPrice decimal.Decimal) error {
	item := domain.Item{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Quantity:     quantity,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
	}
	if errs := item.ValidateInvariants(); len(errs) > 0 {
		return errs[0]
	}

	if err := s.repo.UpdateItem(item); err != nil {
		return err
	}

	s.logger.WithField("item_id", id).Info("item updated")
	return nil
}

// DeleteItem удаляет товар, если на него не ссылаются позиции заказов.
func (s *Service) DeleteItem(id string) error {
	if err := s.repo.DeleteItem(id); err != nil {
		return err
	}
	s.logger.WithField("item_id", id).Info("item deleted")
	return nil
}

// FindItems возвращает товары по подстроке названия.
func (s *Service) FindItems(search string) ([]domain.Item, error) {
	return s.repo.FindItems(strings.TrimSpace(search))
}
