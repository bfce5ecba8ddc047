package response

import "github.com/gofiber/fiber/v2"

// Envelope: Tüm API yanıtları {success, data, error} zarfı ile döner.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

func NoContent(c *fiber.Ctx) error {
	return c.JSON(Envelope{Success: true})
}

// Fail: Uygulama seviyesindeki hata yakalayıcıdan çağrılır.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: &message})
}
