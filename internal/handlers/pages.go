package handlers

import (
	"embed"
	"html/template"
	"log"

	"delight/internal/services"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the order form and the login page. The form is
// rendered from the same catalog the intake endpoint prices against, so
// the two can never drift apart.
type PageHandler struct {
	menuService *services.MenuService
	templates   *template.Template
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(menuService *services.MenuService) *PageHandler {
	return &PageHandler{
		menuService: menuService,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// RegisterRoutes registers the page routes with the Fiber app. The gate
// runs on exactly these two paths, the protected page set.
func (h *PageHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	router.Get("/", gate, h.HandleHome)
	router.Get("/login", gate, h.HandleLogin)
}

// menuView is a menu item prepared for rendering.
type menuView struct {
	ID          string
	Name        string
	Description string
	Price       string
}

// HandleHome renders the order form.
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	menus, err := h.menuService.GetAllMenus()
	if err != nil {
		log.Printf("Error loading catalog for order form: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Une erreur est survenue")
	}

	views := make([]menuView, 0, len(menus))
	for _, menu := range menus {
		views = append(views, menuView{
			ID:          menu.ID,
			Name:        menu.Name,
			Description: menu.Description,
			Price:       menu.Price.StringFixed(2),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return h.templates.ExecuteTemplate(c.Response().BodyWriter(), "index.html", fiber.Map{
		"Menus": views,
	})
}

// HandleLogin renders the login page.
func (h *PageHandler) HandleLogin(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return h.templates.ExecuteTemplate(c.Response().BodyWriter(), "login.html", nil)
}
