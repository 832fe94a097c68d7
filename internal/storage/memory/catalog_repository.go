package memory

import (
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// catalogRepository — in-memory реализация CatalogRepository.
type catalogRepository struct {
	store *Store
}

// CreateClient сохраняет клиента, если его email свободен.
func (r *catalogRepository) CreateClient(client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailInUseLocked(client.Email, "") {
		return domain.ErrEmailTaken
	}
	r.store.clients[client.ID] = client
	return nil
}

// UpdateClient обновляет имя, контакт и email; накопленная сумма сохраняется.
func (r *catalogRepository) UpdateClient(client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.clients[client.ID]
	if !ok {
		return domain.ErrClientNotFound
	}
	if r.emailInUseLocked(client.Email, client.ID) {
		return domain.ErrEmailTaken
	}
	current.Name = client.Name
	current.Contact = client.Contact
	current.Email = client.Email
	r.store.clients[client.ID] = current
	return nil
}

// DeleteClient удаляет клиента, на которого не ссылается ни один заказ.
func (r *catalogRepository) DeleteClient(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	for _, order := range r.store.orders {
		if order.ClientID == id {
			return domain.ErrClientReferenced
		}
	}
	delete(r.store.clients, id)
	return nil
}

// GetClient возвращает клиента или ErrClientNotFound.
func (r *catalogRepository) GetClient(id string) (domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	client, ok := r.store.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return client, nil
}

// FindClients ищет подстроку в имени, контакте или email без учёта регистра.
func (r *catalogRepository) FindClients(search string) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(search)
	result := make([]domain.Client, 0, len(r.store.clients))
	for _, client := range r.store.clients {
		if term != "" &&
			!strings.Contains(strings.ToLower(client.Name), term) &&
			!strings.Contains(strings.ToLower(client.Contact), term) &&
			!strings.Contains(strings.ToLower(client.Email), term) {
			continue
		}
		result = append(result, client)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// EmailInUse проверяет занятость email, исключая запись excludeID.
func (r *catalogRepository) EmailInUse(email, excludeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.emailInUseLocked(email, excludeID), nil
}

func (r *catalogRepository) emailInUseLocked(email, excludeID string) bool {
	if email == "" {
		return false
	}
	for _, client := range r.store.clients {
		if client.ID == excludeID {
			continue
		}
		if client.Email == email {
			return true
		}
	}
	return false
}

// CreateItem сохраняет новый товар.
func (r *catalogRepository) CreateItem(item domain.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.items[item.ID] = item
	return nil
}

// UpdateItem перезаписывает карточку товара.
func (r *catalogRepository) UpdateItem(item domain.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.items[item.ID]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.CreatedAt = current.CreatedAt
	r.store.items[item.ID] = item
	return nil
}

// DeleteItem удаляет товар, если на него не ссылаются позиции заказов.
func (r *catalogRepository) DeleteItem(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	for _, order := range r.store.orders {
		for _, line := range order.Lines {
			if line.ItemID == id {
				return domain.ErrItemReferenced
			}
		}
	}
	delete(r.store.items, id)
	return nil
}

// GetItem возвращает товар или ErrItemNotFound.
func (r *catalogRepository) GetItem(id string) (domain.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

// FindItems ищет товары по подстроке названия без учёта регистра.
func (r *catalogRepository) FindItems(search string) ([]domain.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(search)
	result := make([]domain.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ domain.CatalogRepository = (*catalogRepository)(nil)
