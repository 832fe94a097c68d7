package domain

// CatalogRepository описывает требования к хранилищу клиентов и товаров.
type CatalogRepository interface {
	// CreateClient сохраняет нового клиента. Возвращает ErrEmailTaken,
	// если непустой email уже занят.
	CreateClient(client Client) error
	// UpdateClient обновляет имя, контакт и email клиента; LifetimeSpend
	// этим путём не меняется. ErrClientNotFound, если id неизвестен.
	UpdateClient(client Client) error
	// DeleteClient удаляет клиента. ErrClientReferenced, если на него
	// ссылается хотя бы один заказ.
	DeleteClient(id string) error
	// GetClient возвращает клиента или ErrClientNotFound.
	GetClient(id string) (Client, error)
	// FindClients возвращает клиентов, у которых имя, контакт или email
	// содержит подстроку search (без учёта регистра). Пустой search —
	// полный список. Порядок стабилен: имя, затем ID.
	FindClients(search string) ([]Client, error)
	// EmailInUse проверяет занятость email, исключая запись excludeID
	// (пустой excludeID — без исключений). Пустой email всегда свободен.
	EmailInUse(email, excludeID string) (bool, error)

	// CreateItem сохраняет новый товар.
	CreateItem(item Item) error
	// UpdateItem обновляет карточку товара. ErrItemNotFound, если id неизвестен.
	UpdateItem(item Item) error
	// DeleteItem удаляет товар. ErrItemReferenced, если на него ссылаются
	// позиции заказов.
	DeleteItem(id string) error
	// GetItem возвращает товар или ErrItemNotFound.
	GetItem(id string) (Item, error)
	// FindItems ищет товары по подстроке названия (без учёта регистра).
	FindItems(search string) ([]Item, error)
}

// OrderRepository описывает журнал заказов. Записи в журнал добавляет только
// движок проведения; внешним вызывающим доступно лишь чтение.
type OrderRepository interface {
	// CreateOrder сохраняет заголовок заказа вместе с позициями.
	// ErrClientNotFound, если клиент не существует. Остатки и накопления
	// этим путём не затрагиваются — полная операция идёт через Fulfill.
	CreateOrder(order Order) error
	// GetOrder возвращает заказ с позициями или ErrOrderNotFound.
	GetOrder(id string) (Order, error)
	// ListSummaries возвращает заказы, отсортированные по дате (новые выше);
	// search — подстрока имени клиента без учёта регистра.
	ListSummaries(search string) ([]OrderSummary, error)
	// Detail собирает данные счёта по заказу или возвращает ErrOrderNotFound.
	Detail(orderID string) (OrderDetail, error)
}

// FulfillmentRepository выполняет проведение заказа как одну изолированную
// транзакцию: вставка заголовка и позиций, условное списание остатков
// (только при достаточном количестве) и начисление суммы клиенту.
// Любой сбой обязан откатить все изменения данной операции.
type FulfillmentRepository interface {
	Fulfill(cmd FulfillmentCommand) (Order, error)
}
