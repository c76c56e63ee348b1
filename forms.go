package site

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SubmissionStore is the store surface the form endpoints write through.
type SubmissionStore interface {
	InsertContact(ctx context.Context, sub ContactSubmission) (string, error)
	HasActiveSubscription(ctx context.Context, email string) (bool, error)
	InsertSubscription(ctx context.Context, sub NewsletterSubscription) (string, error)
}

const (
	defaultLocale = "en"
	defaultSource = "blog_page"
)

// handleContact validates and persists a contact form submission.
// Validation failures are client-correctable 400s with a specific message;
// a failed write is a 500 carrying the store error, because silently
// dropping a lead is unacceptable.
func (a *App) handleContact(c echo.Context) error {
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many submissions. Please try again later."})
	}
	var sub ContactSubmission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if sub.Name == "" || sub.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name and email are required"})
	}
	if !ValidEmail(sub.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide a valid email address"})
	}
	id, err := a.Forms.InsertContact(c.Request().Context(), sub)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fmt.Sprintf("Failed to save contact information: %v", err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Contact information saved successfully!",
		"id":      id,
	})
}

// handleSubscribe validates and persists a newsletter subscription. The
// duplicate check runs against the lowercased email; if the check itself
// fails, the failure is logged and the write proceeds anyway. Completing
// the subscription on a degraded store beats strict duplicate prevention.
func (a *App) handleSubscribe(c echo.Context) error {
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many submissions. Please try again later."})
	}
	var sub NewsletterSubscription
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if sub.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}
	if !ValidEmail(sub.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide a valid email address"})
	}
	sub.Email = strings.ToLower(sub.Email)
	if sub.Locale == "" {
		sub.Locale = defaultLocale
	}
	if sub.Source == "" {
		sub.Source = defaultSource
	}

	ctx := c.Request().Context()
	exists, err := a.Forms.HasActiveSubscription(ctx, sub.Email)
	if err != nil {
		c.Logger().Errorf("check subscription for %s: %v", sub.Email, err)
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "This email is already subscribed to our newsletter"})
	}

	id, err := a.Forms.InsertSubscription(ctx, sub)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fmt.Sprintf("Failed to subscribe to newsletter: %v", err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Successfully subscribed to newsletter!",
		"id":      id,
	})
}
