package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/autoshop/garage-booking/internal/domain"
)

var (
	// ErrUnknownService возвращается для ключа, которого нет в каталоге
	ErrUnknownService = errors.New("unknown service")

	// ErrInvalidCatalog возвращается при некорректной таблице услуг
	ErrInvalidCatalog = errors.New("invalid service catalog")
)

// Catalog таблица услуг мастерской: ключ -> длительность
type Catalog struct {
	services        []domain.Service
	byKey           map[string]domain.Service
	defaultDuration int
	strict          bool
}

// New создает каталог. Ключи должны быть уникальны, длительности положительны.
// strict определяет поведение Resolve для неизвестных ключей.
func New(services []domain.Service, defaultDuration int, strict bool) (*Catalog, error) {
	if defaultDuration <= 0 {
		return nil, fmt.Errorf("%w: default duration must be positive", ErrInvalidCatalog)
	}

	c := &Catalog{
		services:        make([]domain.Service, 0, len(services)),
		byKey:           make(map[string]domain.Service, len(services)),
		defaultDuration: defaultDuration,
		strict:          strict,
	}

	for _, s := range services {
		s.Key = normalizeKey(s.Key)
		if s.Key == "" {
			return nil, fmt.Errorf("%w: empty service key", ErrInvalidCatalog)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q has non-positive duration", ErrInvalidCatalog, s.Key)
		}
		if _, exists := c.byKey[s.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidCatalog, s.Key)
		}
		if s.Name == "" {
			s.Name = s.Key
		}
		c.byKey[s.Key] = s
		c.services = append(c.services, s)
	}

	return c, nil
}

// Get возвращает услугу по ключу
func (c *Catalog) Get(key string) (domain.Service, error) {
	s, ok := c.byKey[normalizeKey(key)]
	if !ok {
		return domain.Service{}, fmt.Errorf("%w: %q", ErrUnknownService, key)
	}
	return s, nil
}

// Duration длительность услуги; для неизвестного ключа - ErrUnknownService
func (c *Catalog) Duration(key string) (int, error) {
	s, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	return s.DurationMinutes, nil
}

// DurationOrDefault длительность услуги или длительность по умолчанию для неизвестного ключа
func (c *Catalog) DurationOrDefault(key string) int {
	if d, err := c.Duration(key); err == nil {
		return d
	}
	return c.defaultDuration
}

// Resolve выбирает Duration или DurationOrDefault в зависимости от режима каталога
func (c *Catalog) Resolve(key string) (int, error) {
	if c.strict {
		return c.Duration(key)
	}
	return c.DurationOrDefault(key), nil
}

// BookedDuration длительность уже записанной услуги.
// Если ключ исчез из каталога, используется длительность, сохраненная при записи.
func (c *Catalog) BookedDuration(key string, stored int) int {
	if d, err := c.Duration(key); err == nil {
		return d
	}
	if stored > 0 {
		return stored
	}
	return c.defaultDuration
}

// List услуги в порядке конфигурации
func (c *Catalog) List() []domain.Service {
	result := make([]domain.Service, len(c.services))
	copy(result, c.services)
	return result
}

// IsStrict сообщает, отклоняются ли неизвестные ключи
func (c *Catalog) IsStrict() bool {
	return c.strict
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
