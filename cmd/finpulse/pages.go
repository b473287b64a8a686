package main

import (
	"github.com/finpulse/finpulse"
	"github.com/finpulse/finpulse/config"
	"github.com/gofiber/fiber/v2"
)

// registerPages mounts the application pages. Handlers are deliberately
// thin: page content and the finance data layer live elsewhere, the routes
// exist so the gate has real public, onboarding, and protected paths to
// guard.
func registerPages(app *fiber.App, cfg config.Config, repo finpulse.RepositoryManager) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "landing"})
	})

	app.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})

	app.Get("/register", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "register"})
	})

	app.Get("/onboarding", sessionPage(cfg, "onboarding"))

	for _, page := range []string{
		"dashboard",
		"transactions",
		"budgets",
		"goals",
		"reminders",
		"reports",
		"settings",
	} {
		app.Get("/"+page, sessionPage(cfg, page))
	}
}

func sessionPage(cfg config.Config, page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := finpulse.SessionFromLocals(c, cfg.GetContextKey())
		if err != nil {
			// The gate redirects anonymous requests before handlers run;
			// reaching this branch means the middleware is miswired.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "no active session",
			})
		}

		return c.JSON(fiber.Map{
			"page": page,
			"user": fiber.Map{
				"id":        session.GetUserID(),
				"name":      session.GetUserName(),
				"email":     session.GetEmail(),
				"onboarded": session.GetOnboarded(),
			},
		})
	}
}
