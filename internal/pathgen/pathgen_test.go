package pathgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAllPhotosByYear(t *testing.T) {
	got := Generate(Params{
		Date:     time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC),
		HasDate:  true,
		Division: DivisionYear,
	})
	assert.Equal(t, "ALL_PHOTOS/2022", got)
}

func TestGenerateAllPhotosByMonthAndDay(t *testing.T) {
	when := time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "ALL_PHOTOS/2022/03", Generate(Params{Date: when, HasDate: true, Division: DivisionMonth}))
	assert.Equal(t, "ALL_PHOTOS/2022/03/04", Generate(Params{Date: when, HasDate: true, Division: DivisionDay}))
}

func TestGenerateNoDivision(t *testing.T) {
	got := Generate(Params{Division: DivisionNone})
	assert.Equal(t, "ALL_PHOTOS", got)
}

func TestGenerateUnknownDate(t *testing.T) {
	got := Generate(Params{HasDate: false, Division: DivisionYear})
	assert.Equal(t, "ALL_PHOTOS/date-unknown", got)
}

func TestGeneratePartnerShared(t *testing.T) {
	got := Generate(Params{PartnerShared: true, Division: DivisionNone})
	assert.Equal(t, "PARTNER_SHARED", got)
}

func TestGenerateAlbumTakesPrecedenceOverPartnerShared(t *testing.T) {
	got := Generate(Params{AlbumName: "Trip 2021", PartnerShared: true, Division: DivisionNone})
	assert.Equal(t, "Albums/Trip 2021", got)
}

func TestSanitizeAlbumNameStripsEmojiAndInvalidChars(t *testing.T) {
	got := SanitizeAlbumName(`Trip: "Best" <2021>? 🎉`)
	assert.Equal(t, "Trip Best 2021", got)
}

func TestSanitizeAlbumNameTrimsTrailingDotsAndSpaces(t *testing.T) {
	assert.Equal(t, "Trip", SanitizeAlbumName("Trip... "))
}

func TestSanitizeAlbumNameEmptyFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, UnknownAlbumName, SanitizeAlbumName("   "))
	assert.Equal(t, UnknownAlbumName, SanitizeAlbumName(`<<<>>>`))
}

func TestSanitizeAlbumNameReservedDeviceName(t *testing.T) {
	assert.Equal(t, "CON_file", SanitizeAlbumName("CON"))
	assert.Equal(t, "com1_file", SanitizeAlbumName("com1"))
}
