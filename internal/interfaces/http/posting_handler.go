package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/application/inventory"
)

// PostingHandler maneja /api/sales y /api/purchases.
type PostingHandler struct {
	uc *inventory.PostingUseCase
}

// NewPostingHandler construye el handler.
func NewPostingHandler(uc *inventory.PostingUseCase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

// PostSale godoc
// @Summary      Registrar venta
// @Description  Encabezado + líneas en una sola transacción; descuenta stock. Falla completa si alguna línea no tiene stock.
// @Tags         sales
// @Security     Cookie
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostSaleRequest  true  "customer_id, sale_date (YYYY-MM-DD), items"
// @Success      201   {object}  dto.PostSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *PostingHandler) PostSale(c *fiber.Ctx) error {
	var in dto.PostSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Cookie
// @Produce      json
// @Param        limit  query  int  false  "Límite (0 = todas)"  default(0)
// @Success      200    {array}  dto.SaleSummaryResponse
// @Router       /api/sales [get]
func (h *PostingHandler) ListSales(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.UserContext(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSale godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Cookie
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *PostingHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PostPurchase godoc
// @Summary      Registrar compra
// @Description  Encabezado + líneas en una sola transacción; incrementa stock.
// @Tags         purchases
// @Security     Cookie
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostPurchaseRequest  true  "supplier_id, purchase_date (YYYY-MM-DD), items"
// @Success      201   {object}  dto.PostPurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PostingHandler) PostPurchase(c *fiber.Ctx) error {
	var in dto.PostPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostPurchase(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Cookie
// @Produce      json
// @Param        limit  query  int  false  "Límite (0 = todas)"  default(0)
// @Success      200    {array}  dto.PurchaseSummaryResponse
// @Router       /api/purchases [get]
func (h *PostingHandler) ListPurchases(c *fiber.Ctx) error {
	out, err := h.uc.ListPurchases(c.UserContext(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPurchase godoc
// @Summary      Obtener compra con sus líneas
// @Tags         purchases
// @Security     Cookie
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PostingHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func queryLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return 0
	}
	return limit
}
