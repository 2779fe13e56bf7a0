// Package policy — правила доступа по владению и роли. Чистые функции над
// (принципал, сущность), без HTTP и без обращения к БД: проверка выполняется
// после того, как целевая сущность уже разрешена по идентификатору.
package policy

import "errors"

var (
	ErrNotAuthenticated = errors.New("требуется аутентификация")
	ErrForbidden        = errors.New("доступ запрещён")
)

// Principal — аутентифицированная личность запроса (из bearer-токена).
type Principal struct {
	ID      int
	IsAdmin bool
}

type Kind int

const (
	KindArticle Kind = iota
	KindComment
	KindTag
	KindUser
)

// Entity — минимум, который нужен правилам: авторы целевой сущности.
// Для тегов и пользователей список пуст — там решает только роль.
type Entity struct {
	AuthorIDs []int
}

type rule func(p Principal, e Entity) bool

// Таблица правил записи: (вид ресурса) → предикат.
// У комментариев админ НЕ имеет приоритета — только точное совпадение автора.
var writeRules = map[Kind]rule{
	KindArticle: func(p Principal, e Entity) bool {
		return p.IsAdmin || containsID(e.AuthorIDs, p.ID)
	},
	KindComment: func(p Principal, e Entity) bool {
		return len(e.AuthorIDs) == 1 && e.AuthorIDs[0] == p.ID
	},
	KindTag: func(p Principal, e Entity) bool {
		return p.IsAdmin
	},
	KindUser: func(p Principal, e Entity) bool {
		return p.IsAdmin
	},
}

// CanRead — чтение (список/деталь) доступно любому аутентифицированному.
func CanRead(p *Principal) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// CanWrite решает, может ли принципал изменить или удалить сущность.
// Отказ аутентифицированному — ErrForbidden, отличимый от ErrNotAuthenticated.
func CanWrite(p *Principal, kind Kind, e Entity) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	r, ok := writeRules[kind]
	if !ok || !r(*p, e) {
		return ErrForbidden
	}
	return nil
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
