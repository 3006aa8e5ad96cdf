package telegram

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// BuildMessage формирует текст уведомления с легкой Markdown-разметкой.
// Набор полей зависит от источника: API-источник дополнительно получает
// подтверждение поданной заявки, Degewo - комнаты, дату въезда и теги.
func BuildMessage(listing domain.ListingRecord) string {
	switch listing.SourceTag {
	case domain.SourceWohnraumkarte:
		return buildWohnraumkarteMessage(listing)
	case domain.SourceDegewo:
		return buildDegewoMessage(listing)
	default:
		return buildGewobagMessage(listing)
	}
}

func buildWohnraumkarteMessage(l domain.ListingRecord) string {
	var b strings.Builder

	b.WriteString("✅ *Application Sent!*\n\n")
	b.WriteString("🏠 *New Apartment Listing!*\n\n")
	fmt.Fprintf(&b, "📝 *Title:* %s\n", l.Title)
	fmt.Fprintf(&b, "📍 *Address:* %s\n", l.Address)
	fmt.Fprintf(&b, "💰 *Price:* %s€\n", l.Price)
	fmt.Fprintf(&b, "🏠 *Size:* %sm²\n", l.Size)
	if l.Rooms != "" {
		fmt.Fprintf(&b, "🛏️ *Rooms:* %s\n", l.Rooms)
	}
	writeLinks(&b, l)

	return b.String()
}

func buildGewobagMessage(l domain.ListingRecord) string {
	var b strings.Builder

	b.WriteString("🏠 *New Gewobag Apartment Found!*\n\n")
	fmt.Fprintf(&b, "📍 *Address:* %s\n", l.Address)
	fmt.Fprintf(&b, "📝 *Title:* %s\n", l.Title)
	fmt.Fprintf(&b, "🏠 *Size:* %s\n", l.Size)
	fmt.Fprintf(&b, "💰 *Rent:* %s\n", l.Price)
	writeLinks(&b, l)

	return b.String()
}

func buildDegewoMessage(l domain.ListingRecord) string {
	var b strings.Builder

	b.WriteString("🏠 *New Degewo Apartment Found!*\n\n")
	fmt.Fprintf(&b, "📍 *Address:* %s\n", l.Address)
	fmt.Fprintf(&b, "📝 *Title:* %s\n", l.Title)
	fmt.Fprintf(&b, "🏠 *Size:* %s\n", orNA(l.Size))
	fmt.Fprintf(&b, "🛏️ *Rooms:* %s\n", orNA(l.Rooms))
	fmt.Fprintf(&b, "📅 *Available:* %s\n", orNA(l.AvailableFrom))
	fmt.Fprintf(&b, "💰 *Rent:* %s\n", l.Price)
	if len(l.Features) > 0 {
		fmt.Fprintf(&b, "🏷️ *Features:* %s\n", strings.Join(l.Features, ", "))
	}
	writeLinks(&b, l)

	return b.String()
}

func writeLinks(b *strings.Builder, l domain.ListingRecord) {
	if l.Link != "" {
		fmt.Fprintf(b, "\n🔗 *View Listing:* [Click here](%s)\n", l.Link)
	}
	if l.Address != "" {
		fmt.Fprintf(b, "🗺️ *Google Maps:* [View Location](%s)\n", googleMapsLink(l.Address))
	}
}

func googleMapsLink(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
