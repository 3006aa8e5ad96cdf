package wohnraumkartefetcher

import (
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// toDomainRecord нормализует объявление API в общую доменную форму.
// Отсутствующие поля остаются пустыми строками.
func toDomainRecord(apt apiApartment) domain.ListingRecord {
	var addressParts []string
	if apt.Strasse != "" {
		addressParts = append(addressParts, apt.Strasse)
	}
	if apt.Plz != "" || apt.Ort != "" {
		addressParts = append(addressParts, strings.TrimSpace(apt.Plz+" "+apt.Ort))
	}

	var link string
	if apt.Slug != "" {
		link = constants.WohnraumkarteListingBaseURL + apt.Slug
	}

	return domain.ListingRecord{
		ID:        apt.WrkID,
		SourceTag: domain.SourceWohnraumkarte,
		Title:     apt.Titel,
		Address:   strings.Join(addressParts, ", "),
		Price:     apt.Preis,
		Size:      apt.Groesse,
		Rooms:     apt.AnzahlZimmer,
		ImageURL:  apt.PreviewImgURL,
		Link:      link,
	}
}
