package seed

import (
	"fmt"
	"strings"

	"nexcos/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds realistic demo entities. It is used to pad the catalog in
// development and to generate fixtures in tests.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

var buildings = []string{"Building A", "Building B", "Building C", "Main Lobby", "Community Center"}

// ResourceInput builds an available resource of a random catalog type.
func (f *Factory) ResourceInput(overrides ...func(*models.ResourceInput)) models.ResourceInput {
	typ := models.ResourceTypes[f.faker.IntRange(0, len(models.ResourceTypes)-1)]
	in := models.ResourceInput{
		Title:       capitalize(f.faker.Adjective()) + " " + capitalize(f.faker.Noun()),
		Type:        typ,
		Description: f.faker.Sentence(10),
		Location:    fmt.Sprintf("%s %s", f.faker.RandomString(buildings), f.faker.RandomString([]string{"Storage", "Workshop", "Room 1", "Room 2"})),
		Owner:       f.faker.Name(),
		Status:      models.ResourceStatusAvailable,
	}
	if typ == models.ResourceTypeSpace || typ == models.ResourceTypeCommunity {
		capacity := f.faker.IntRange(4, 80)
		rate := float64(f.faker.IntRange(0, 40))
		in.Capacity = &capacity
		in.Rate = &rate
		in.Amenities = []string{"Wi-Fi", f.faker.RandomString([]string{"Projector", "Kitchen", "Whiteboard", "Sound system"})}
	}
	if f.faker.Bool() {
		img := f.faker.ImageURL(640, 480)
		in.Image = &img
	}
	for _, o := range overrides {
		o(&in)
	}
	return in
}

// AlertInput builds an unverified alert.
func (f *Factory) AlertInput() models.AlertInput {
	typ := models.AlertTypePrep
	if f.faker.Bool() {
		typ = models.AlertTypeHelp
	}
	return models.AlertInput{
		Type:        typ,
		Title:       f.faker.Sentence(4),
		Description: f.faker.Sentence(12),
		Location:    f.faker.RandomString(buildings),
		Sender:      f.faker.Name(),
	}
}

// Account holds generated sign-up credentials.
type Account struct {
	Email       string
	Password    string
	DisplayName string
	Building    string
}

// Account builds credentials that pass sign-up validation.
func (f *Factory) Account() Account {
	return Account{
		Email:       strings.ToLower(f.faker.Username()) + "@example.com",
		Password:    f.faker.Password(true, true, true, false, false, 12) + "a1",
		DisplayName: f.faker.FirstName() + " " + f.faker.LastName(),
		Building:    f.faker.RandomString(buildings),
	}
}

// DemoResources builds n resource inputs.
func (f *Factory) DemoResources(n int) []models.ResourceInput {
	out := make([]models.ResourceInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.ResourceInput())
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
