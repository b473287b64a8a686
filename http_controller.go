package finpulse

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

type AuthControllerRoutes struct {
	Login      string
	Logout     string
	Register   string
	Onboarding string
}

// AuthController owns the credential endpoints: login, logout, signup, and
// onboarding completion. Responses are JSON; page rendering happens
// elsewhere.
type AuthController struct {
	Logger     Logger
	Repo       RepositoryManager
	Auther     *RouteAuthenticator
	Routes     *AuthControllerRoutes
	Register   *RegisterUserHandler
	Onboarding *CompleteOnboardingHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

func WithControllerRoutes(r *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Routes = r
		return c
	}
}

func NewAuthController(repo RepositoryManager, auther *RouteAuthenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Repo:   repo,
		Auther: auther,
		Routes: &AuthControllerRoutes{
			Login:      "/login",
			Logout:     "/logout",
			Register:   "/register",
			Onboarding: "/onboarding/complete",
		},
		Register:   NewRegisterUserHandler(repo),
		Onboarding: NewCompleteOnboardingHandler(repo),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the credential endpoints on the app
func RegisterAuthRoutes(app *fiber.App, controller *AuthController) {
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Get(controller.Routes.Logout, controller.LogOut)
	app.Post(controller.Routes.Register, controller.RegistrationCreate)
	app.Post(controller.Routes.Onboarding, controller.OnboardingComplete)
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// GetExtendedSession reports the remember-me choice
func (r LoginRequest) GetExtendedSession() bool {
	return r.RememberMe
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "validation failed",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if err := a.Auther.Login(c, payload); err != nil {
		// One generic message regardless of internal cause.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrInvalidCredentials.Message,
		})
	}

	redirect := a.Auther.GetRedirect(c, a.Auther.gate.Routes().Dashboard)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"redirect": redirect,
	})
}

func (a *AuthController) LogOut(c *fiber.Ctx) error {
	a.Auther.Logout(c)
	return c.Redirect("/", fiber.StatusTemporaryRedirect)
}

// RegistrationCreatePayload is the signup payload
type RegistrationCreatePayload struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(10, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.Length(10, 100),
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegistrationCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload", "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "validation failed",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	req := RegisterUserMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}

	user, err := a.Register.Execute(c.UserContext(), req)
	if err != nil {
		a.Logger.Error("register user", "error", err)

		status := fiber.StatusInternalServerError
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryConflict {
			status = fiber.StatusConflict
		}

		return c.Status(status).JSON(fiber.Map{
			"error": "could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID.String(),
		"email": user.Email,
	})
}

// OnboardingComplete marks the session user as onboarded. Other open tabs
// pick the change up through the gate's refresh without a new login.
func (a *AuthController) OnboardingComplete(c *fiber.Ctx) error {
	session, err := SessionFromLocals(c, a.Auther.cfg.GetContextKey())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no active session",
		})
	}

	msg := CompleteOnboardingMessage{UserID: session.GetUserID()}
	if err := a.Onboarding.Execute(c.UserContext(), msg); err != nil {
		a.Logger.Error("complete onboarding", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not complete onboarding",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"redirect": a.Auther.gate.Routes().Dashboard,
	})
}
