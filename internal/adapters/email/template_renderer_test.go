package email

import (
	"strings"
	"testing"

	"eventhive/internal/domain"
)

func TestTemplateRenderer_RegistrationConfirmed(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.RegistrationEmailData{
		Email:      "ada@corp.com",
		EventTitle: "GopherCon",
		EventDate:  "October 1, 2026",
		StartTime:  "09:00",
		Location:   "Berlin",
	}
	subject, html, text, err := r.Render("registration_confirmed", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(subject, "GopherCon") {
		t.Errorf("subject missing event title: %q", subject)
	}
	for _, want := range []string{"GopherCon", "October 1, 2026", "09:00", "Berlin"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestTemplateRenderer_Waitlist(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.RegistrationEmailData{
		EventTitle: "GopherCon",
		EventDate:  "October 1, 2026",
		StartTime:  "09:00",
		Location:   "Berlin",
		Waitlisted: true,
	}
	subject, _, text, err := r.Render("waitlist_added", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(strings.ToLower(subject), "waitlist") {
		t.Errorf("subject should mention the waitlist: %q", subject)
	}
	if !strings.Contains(strings.ToLower(text), "waitlist") {
		t.Error("text body should mention the waitlist")
	}
}

func TestTemplateRenderer_EventReminder(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.EventReminderEmailData{
		EventTitle: "GopherCon",
		EventDate:  "October 1, 2026",
		StartTime:  "09:00",
		Location:   "Berlin",
	}
	subject, html, _, err := r.Render("event_reminder", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(subject, "GopherCon") {
		t.Errorf("subject missing event title: %q", subject)
	}
	if !strings.Contains(html, "Berlin") {
		t.Error("html missing location")
	}
}

func TestTemplateRenderer_PasswordReset(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.PasswordResetEmailData{
		Email:            "ada@corp.com",
		Token:            "tok-12345",
		ExpiresInMinutes: 30,
	}
	_, html, text, err := r.Render("password_reset", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "tok-12345") {
		t.Error("html missing reset token")
	}
	if !strings.Contains(text, "tok-12345") {
		t.Error("text missing reset token")
	}
	if !strings.Contains(text, "30") {
		t.Error("text missing expiry window")
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()

	if _, _, _, err := r.Render("no_such_template", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.RegistrationEmailData{
		EventTitle: `<script>alert("x")</script>`,
		EventDate:  "October 1, 2026",
		StartTime:  "09:00",
		Location:   "Berlin",
	}
	_, html, _, err := r.Render("registration_confirmed", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("html body must escape template data")
	}
}
