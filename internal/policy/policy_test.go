package policy

import (
	"errors"
	"testing"
)

func TestCanRead(t *testing.T) {
	if err := CanRead(nil); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("без принципала ожидался ErrNotAuthenticated, получено %v", err)
	}
	if err := CanRead(&Principal{ID: 1}); err != nil {
		t.Fatalf("аутентифицированное чтение должно быть разрешено: %v", err)
	}
}

func TestCanWrite_Unauthenticated(t *testing.T) {
	err := CanWrite(nil, KindArticle, Entity{AuthorIDs: []int{1}})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("ожидался ErrNotAuthenticated, получено %v", err)
	}
}

func TestCanWrite_Matrix(t *testing.T) {
	user := &Principal{ID: 1}
	other := &Principal{ID: 2}
	admin := &Principal{ID: 3, IsAdmin: true}

	cases := []struct {
		name    string
		p       *Principal
		kind    Kind
		entity  Entity
		allowed bool
	}{
		{"статья: автор может", user, KindArticle, Entity{AuthorIDs: []int{1, 5}}, true},
		{"статья: не автор не может", other, KindArticle, Entity{AuthorIDs: []int{1, 5}}, false},
		{"статья: админ может всегда", admin, KindArticle, Entity{AuthorIDs: []int{1}}, true},

		{"комментарий: автор может", user, KindComment, Entity{AuthorIDs: []int{1}}, true},
		{"комментарий: не автор не может", other, KindComment, Entity{AuthorIDs: []int{1}}, false},
		// асимметрия сохранена намеренно: у комментариев нет админ-обхода
		{"комментарий: админ НЕ может", admin, KindComment, Entity{AuthorIDs: []int{1}}, false},

		{"тег: обычный пользователь не может", user, KindTag, Entity{}, false},
		{"тег: админ может", admin, KindTag, Entity{}, true},

		{"пользователь: обычный не может", user, KindUser, Entity{}, false},
		{"пользователь: админ может", admin, KindUser, Entity{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanWrite(tc.p, tc.kind, tc.entity)
			if tc.allowed && err != nil {
				t.Fatalf("ожидалось разрешение, получено %v", err)
			}
			if !tc.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("ожидался ErrForbidden, получено %v", err)
			}
		})
	}
}
