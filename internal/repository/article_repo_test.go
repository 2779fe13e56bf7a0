package repository

import (
	"strings"
	"testing"

	"scholarhub/internal/listquery"
)

func TestBuildArticleListSQL_KeywordOverridesOrdering(t *testing.T) {
	opt := &listquery.Options{
		Keyword: "graphs",
		Order:   &listquery.Order{Column: "title", Desc: true},
	}

	sql, args := buildArticleListSQL(opt)

	// поиск перекрывает запрошенный ordering: порядок по рангу
	if !strings.Contains(sql, "ORDER BY rank DESC") {
		t.Fatalf("ожидался порядок по рангу, получено: %s", sql)
	}
	if strings.Contains(sql, "ORDER BY a.title") {
		t.Fatalf("ordering не должен перекрывать поиск: %s", sql)
	}
	if len(args) != 1 || args[0] != "graphs" {
		t.Fatalf("keyword не попал в аргументы: %v", args)
	}
}

func TestBuildArticleListSQL_KeywordExcludesZeroRank(t *testing.T) {
	sql, _ := buildArticleListSQL(&listquery.Options{Keyword: "graphs"})

	if !strings.Contains(sql, "ts_rank") || !strings.Contains(sql, "> 0") {
		t.Fatalf("статьи с нулевым рангом должны исключаться: %s", sql)
	}
	if !strings.Contains(sql, "plainto_tsquery") {
		t.Fatalf("нет полнотекстового условия: %s", sql)
	}
}

func TestBuildArticleListSQL_OrderingWithoutKeyword(t *testing.T) {
	opt := &listquery.Options{Order: &listquery.Order{Column: "publication_date", Desc: true}}

	sql, args := buildArticleListSQL(opt)

	if !strings.Contains(sql, "ORDER BY a.publication_date DESC") {
		t.Fatalf("ожидалась сортировка по колонке: %s", sql)
	}
	if strings.Contains(sql, "ts_rank") {
		t.Fatalf("ранг не должен появляться без keyword: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("лишние аргументы: %v", args)
	}
}

func TestBuildArticleListSQL_DefaultOrder(t *testing.T) {
	sql, _ := buildArticleListSQL(&listquery.Options{})

	if !strings.Contains(sql, "ORDER BY a.id ASC") {
		t.Fatalf("ожидался порядок по id: %s", sql)
	}
}

func TestBuildArticleListSQL_FiltersPrecedeSearch(t *testing.T) {
	year := 2024
	opt := &listquery.Options{
		Year:     &year,
		TagNames: []string{"go"},
		Keyword:  "graphs",
		Limit:    10,
		Offset:   20,
	}

	sql, args := buildArticleListSQL(opt)

	if !strings.Contains(sql, "EXTRACT(YEAR FROM a.publication_date) = $1") {
		t.Fatalf("фильтр года не попал в запрос: %s", sql)
	}
	if !strings.Contains(sql, "WHERE") {
		t.Fatalf("нет WHERE при заданных фильтрах: %s", sql)
	}
	// год, теги, keyword, limit, offset
	if len(args) != 5 {
		t.Fatalf("ожидалось 5 аргументов, получено %d: %v", len(args), args)
	}
	if !strings.Contains(sql, "LIMIT $4") || !strings.Contains(sql, "OFFSET $5") {
		t.Fatalf("пагинация нумеруется после фильтров и поиска: %s", sql)
	}
}
