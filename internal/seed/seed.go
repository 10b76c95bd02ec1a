// Package seed provides the fixed startup data for the in-memory stores and
// generators for demo and test data.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"nexcos/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yml
var defaultDocument []byte

// Data is the full startup state for every store.
type Data struct {
	Resources            []models.Resource
	Alerts               []models.Alert
	ChatGroups           []models.ChatGroup
	Notifications        []models.Notification
	NotificationSettings models.NotificationSettings
}

type document struct {
	Resources []struct {
		ID          string   `yaml:"id"`
		Title       string   `yaml:"title"`
		Type        string   `yaml:"type"`
		Description string   `yaml:"description"`
		Location    string   `yaml:"location"`
		Owner       string   `yaml:"owner"`
		Status      string   `yaml:"status"`
		Image       string   `yaml:"image"`
		Capacity    *int     `yaml:"capacity"`
		Rate        *float64 `yaml:"rate"`
		Amenities   []string `yaml:"amenities"`
	} `yaml:"resources"`
	Alerts []struct {
		ID          string `yaml:"id"`
		Type        string `yaml:"type"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Location    string `yaml:"location"`
		Sender      string `yaml:"sender"`
		Verified    bool   `yaml:"verified"`
	} `yaml:"alerts"`
	ChatGroups []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Members     []string `yaml:"members"`
		Image       string   `yaml:"image"`
	} `yaml:"chat_groups"`
	Notifications []struct {
		ID      string `yaml:"id"`
		Title   string `yaml:"title"`
		Message string `yaml:"message"`
		Type    string `yaml:"type"`
		Read    bool   `yaml:"read"`
		Age     string `yaml:"age"`
	} `yaml:"notifications"`
	NotificationSettings models.NotificationSettings `yaml:"notification_settings"`
}

// Default parses the embedded seed document. Every created_at is set to now,
// less a notification's age.
func Default(now time.Time) (*Data, error) {
	return Parse(defaultDocument, now)
}

// Parse decodes a seed document and checks every enum value in it.
func Parse(raw []byte, now time.Time) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}

	ms := now.UnixMilli()
	data := &Data{NotificationSettings: doc.NotificationSettings}

	for _, r := range doc.Resources {
		res := models.Resource{
			ID:          r.ID,
			Title:       r.Title,
			Type:        models.ResourceType(r.Type),
			Description: r.Description,
			Location:    r.Location,
			Owner:       r.Owner,
			Status:      models.ResourceStatus(r.Status),
			Capacity:    r.Capacity,
			Rate:        r.Rate,
			Amenities:   r.Amenities,
			CreatedAt:   ms,
		}
		if r.Image != "" {
			img := r.Image
			res.Image = &img
		}
		if !res.Type.Valid() {
			return nil, fmt.Errorf("resource %s: unknown type %q", r.ID, r.Type)
		}
		if !res.Status.Valid() {
			return nil, fmt.Errorf("resource %s: unknown status %q", r.ID, r.Status)
		}
		data.Resources = append(data.Resources, res)
	}

	for _, a := range doc.Alerts {
		alert := models.Alert{
			ID:          a.ID,
			Type:        models.AlertType(a.Type),
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Sender:      a.Sender,
			Verified:    a.Verified,
			CreatedAt:   ms,
		}
		if !alert.Type.Valid() {
			return nil, fmt.Errorf("alert %s: unknown type %q", a.ID, a.Type)
		}
		data.Alerts = append(data.Alerts, alert)
	}

	for _, g := range doc.ChatGroups {
		data.ChatGroups = append(data.ChatGroups, models.ChatGroup{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Members:     g.Members,
			Image:       g.Image,
		})
	}

	for _, n := range doc.Notifications {
		var age time.Duration
		if n.Age != "" {
			d, err := time.ParseDuration(n.Age)
			if err != nil {
				return nil, fmt.Errorf("notification %s: bad age %q: %w", n.ID, n.Age, err)
			}
			age = d
		}
		notif := models.Notification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      models.NotificationType(n.Type),
			Read:      n.Read,
			CreatedAt: now.Add(-age).UnixMilli(),
		}
		if !notif.Type.Valid() {
			return nil, fmt.Errorf("notification %s: unknown type %q", n.ID, n.Type)
		}
		data.Notifications = append(data.Notifications, notif)
	}

	return data, nil
}
