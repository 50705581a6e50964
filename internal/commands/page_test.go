package commands

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/partselect/partchat/internal/errors"
	"github.com/partselect/partchat/internal/models"
)

func TestProductCmd(t *testing.T) {
	env := newTestEnv(t)
	env.client.ProductVal = &models.Product{
		PartNumber:    "PS11752778",
		Name:          "Refrigerator Door Shelf Bin",
		Price:         44.95,
		StockQuantity: 3,
	}

	if err := env.run("product", "PS11752778"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.out.String()
	for _, want := range []string{
		"# Refrigerator Door Shelf Bin",
		"**Part Number:** PS11752778",
		"In Stock",
		"/products/PS11752778/installation-guide",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if env.client.LastPartNumber != "PS11752778" {
		t.Errorf("LastPartNumber = %q", env.client.LastPartNumber)
	}
}

func TestProductCmd_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.client.ProductErr = apperrors.NewAPIError(404, "/api/products/PS0/", "not found")

	err := env.run("product", "PS0")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(env.out.String(), "No product found for PS0.") {
		t.Errorf("unexpected output %q", env.out.String())
	}
}

func TestProductCmd_RequiresPartNumber(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("product"); err == nil {
		t.Fatal("expected error without a part number")
	}
}

func TestGuideCmd(t *testing.T) {
	env := newTestEnv(t)
	env.client.GuideVal = &models.InstallationGuide{
		Product: models.Product{PartNumber: "PS11752778", Name: "Door Shelf Bin"},
		Content: "Open the door.\nLift the old bin out.\nPush the new bin down until it clicks.",
	}

	if err := env.run("guide", "PS11752778"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "# Installation Guide for Door Shelf Bin") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Lift the old bin out.\n\n") {
		t.Errorf("guide lines should be separate paragraphs:\n%s", out)
	}
}

func TestGuideCmd_Alias(t *testing.T) {
	env := newTestEnv(t)
	env.client.GuideErr = apperrors.NewAPIError(500, "/api/products/PS1/installation-guide/", "boom")

	err := env.run("install", "PS1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(env.out.String(), "Could not load installation guide for PS1.") {
		t.Errorf("unexpected output %q", env.out.String())
	}
}

func TestFAQCmd(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("faq"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "Frequently Asked Questions") {
		t.Errorf("missing FAQ title:\n%s", out)
	}
	for _, e := range models.FAQ() {
		if !strings.Contains(out, e.Question) {
			t.Errorf("missing question %q", e.Question)
		}
	}
	if env.client.LastPartNumber != "" {
		t.Error("FAQ must not fetch anything")
	}
}
