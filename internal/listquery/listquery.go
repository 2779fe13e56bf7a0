// Package listquery разбирает и проверяет параметры списочных запросов:
// белый список фильтров на ресурс, membership-фильтры списком через запятую,
// сортировка и пагинация. SQL по разобранным опциям строит слой repository.
package listquery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Параметры, допустимые на любом списочном эндпоинте.
var globalParams = map[string]struct{}{
	"keyword":  {},
	"ordering": {},
	"limit":    {},
	"offset":   {},
}

// Resource — статическая декларация допустимых фильтров и колонок сортировки.
// Набор объявлен явно, а не выводится из модели: так он проверяем и аудируем.
type Resource struct {
	Name     string
	Filters  []string
	Ordering []string
}

var (
	Articles = Resource{
		Name:     "articles",
		Filters:  []string{"year", "month", "authors", "tags"},
		Ordering: []string{"id", "title", "abstract", "publication_date"},
	}

	// Экспорт в CSV дополнительно принимает выборку по списку id.
	ArticlesCSV = Resource{
		Name:     "articles_csv",
		Filters:  []string{"year", "month", "authors", "tags", "id"},
		Ordering: []string{"id", "title", "abstract", "publication_date"},
	}

	Comments = Resource{
		Name:     "comments",
		Filters:  []string{"year", "month", "author", "article"},
		Ordering: []string{"id", "text", "publication_date"},
	}

	Tags = Resource{
		Name:     "tags",
		Filters:  []string{"name"},
		Ordering: []string{"id", "name"},
	}

	// Пользователи фильтров не объявляют: допустим только глобальный набор.
	Users = Resource{
		Name:     "users",
		Filters:  nil,
		Ordering: []string{"id", "email", "first_name", "last_name", "date_joined"},
	}
)

type Order struct {
	Column string
	Desc   bool
}

// Options — результат разбора query-параметров одного списочного запроса.
// Фильтры комбинируются по AND; фильтрация всегда предшествует поиску и
// сортировке.
type Options struct {
	Year  *int
	Month *int

	AuthorIDs []int64 // articles: членство в списке id
	TagNames  []string
	IDs       []int64 // только CSV-вариант

	AuthorID  *int64 // comments: точное совпадение
	ArticleID *int64

	Name *string // tags: точное совпадение

	Keyword string
	Order   *Order
	Limit   int
	Offset  int
}

// Validate сравнивает имена параметров запроса с декларацией ресурса и
// глобальным набором. Возвращает ошибку со ВСЕМИ недопустимыми именами —
// до какого-либо обращения к хранилищу.
func Validate(params url.Values, res Resource) error {
	allowed := make(map[string]struct{}, len(res.Filters)+len(globalParams))
	for _, f := range res.Filters {
		allowed[f] = struct{}{}
	}
	for g := range globalParams {
		allowed[g] = struct{}{}
	}

	var invalid []string
	for name := range params {
		if _, ok := allowed[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return fmt.Errorf("недопустимые параметры запроса: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// Parse проверяет параметры и разбирает их в Options. Непонятное значение
// фильтра (например, нечисловой year) — ошибка, а не тихое игнорирование.
func Parse(params url.Values, res Resource) (*Options, error) {
	if err := Validate(params, res); err != nil {
		return nil, err
	}

	opt := &Options{}

	for _, f := range res.Filters {
		raw := strings.TrimSpace(params.Get(f))
		if raw == "" {
			continue
		}
		switch f {
		case "year":
			v, err := parseIntParam("year", raw)
			if err != nil {
				return nil, err
			}
			opt.Year = &v
		case "month":
			v, err := parseIntParam("month", raw)
			if err != nil {
				return nil, err
			}
			if v < 1 || v > 12 {
				return nil, fmt.Errorf("параметр month должен быть в диапазоне 1–12")
			}
			opt.Month = &v
		case "authors":
			ids, err := parseIDList("authors", raw)
			if err != nil {
				return nil, err
			}
			opt.AuthorIDs = ids
		case "tags":
			opt.TagNames = splitList(raw)
		case "id":
			ids, err := parseIDList("id", raw)
			if err != nil {
				return nil, err
			}
			opt.IDs = ids
		case "author":
			v, err := parseIntParam("author", raw)
			if err != nil {
				return nil, err
			}
			id := int64(v)
			opt.AuthorID = &id
		case "article":
			v, err := parseIntParam("article", raw)
			if err != nil {
				return nil, err
			}
			id := int64(v)
			opt.ArticleID = &id
		case "name":
			name := raw
			opt.Name = &name
		}
	}

	opt.Keyword = strings.TrimSpace(params.Get("keyword"))

	if raw := strings.TrimSpace(params.Get("ordering")); raw != "" {
		ord, err := parseOrdering(raw, res.Ordering)
		if err != nil {
			return nil, err
		}
		opt.Order = ord
	}

	var err error
	if opt.Limit, err = parseBound("limit", params.Get("limit")); err != nil {
		return nil, err
	}
	if opt.Offset, err = parseBound("offset", params.Get("offset")); err != nil {
		return nil, err
	}

	return opt, nil
}

func parseIntParam(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("параметр %s должен быть числом, получено %q", name, raw)
	}
	return v, nil
}

// parseBound — limit/offset: неотрицательное число, пустое значение = 0.
func parseBound(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("параметр %s должен быть неотрицательным числом", name)
	}
	return v, nil
}

func parseIDList(name, raw string) ([]int64, error) {
	parts := splitList(raw)
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("параметр %s должен быть списком чисел через запятую, получено %q", name, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseOrdering — поле в стиле "title" / "-title", только из белого списка.
func parseOrdering(raw string, allowed []string) (*Order, error) {
	ord := &Order{Column: raw}
	if strings.HasPrefix(raw, "-") {
		ord.Desc = true
		ord.Column = strings.TrimPrefix(raw, "-")
	}
	for _, col := range allowed {
		if ord.Column == col {
			return ord, nil
		}
	}
	return nil, fmt.Errorf("сортировка по полю %q не поддерживается", ord.Column)
}
