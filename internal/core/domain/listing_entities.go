package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// SourceTag идентифицирует источник объявления. Seen-set партиционирован
// по источникам, поэтому одинаковые числовые id с разных площадок не конфликтуют.
type SourceTag string

const (
	SourceWohnraumkarte SourceTag = "wohnraumkarte"
	SourceGewobag       SourceTag = "gewobag"
	SourceDegewo        SourceTag = "degewo"
)

// ListingRecord - нормализованное объявление, общая форма для всех источников.
// Поля - свободный текст как есть с площадки; отсутствующие значения
// представлены пустой строкой / пустым срезом, не nil-паникой.
type ListingRecord struct {
	ID        string
	SourceTag SourceTag

	Title   string
	Address string
	Price   string
	Size    string

	// Опциональные поля, есть не у каждого источника
	Rooms         string
	AvailableFrom string
	Features      []string
	ImageURL      string
	Link          string
}

// ContentHashID строит детерминированный fallback-идентификатор из ключевых
// текстовых полей объявления, когда разметка источника не содержит
// собственного id. Стабильнее позиционного индекса: перестановка карточек
// на странице между опросами не меняет идентичность.
func ContentHashID(source SourceTag, address, title, price string) string {
	parts := []string{
		string(source),
		normalizeHashPart(address),
		normalizeHashPart(title),
		normalizeHashPart(price),
	}

	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s-%x", source, h[:8])
}

func normalizeHashPart(s string) string {
	if s == "" {
		return "null"
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
