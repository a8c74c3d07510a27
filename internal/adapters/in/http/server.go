package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/intake"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases. The
// acting party is read from the X-Actor-Id / X-Actor-Role headers; actual
// authentication lives upstream.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	advanceOrderHandler         commands.AdvanceOrderCommandHandler
	submitPaymentHandler        commands.SubmitPaymentCommandHandler
	resubmitPaymentHandler      commands.ResubmitPaymentCommandHandler
	validatePaymentHandler      commands.ValidatePaymentCommandHandler
	rejectPaymentHandler        commands.RejectPaymentCommandHandler
	assignOperatorHandler       commands.AssignOperatorCommandHandler
	createBoxHandler            commands.CreateBoxCommandHandler
	packBoxHandler              commands.PackBoxCommandHandler
	attachOrderToBoxHandler     commands.AttachOrderToBoxCommandHandler
	assignBoxToContainerHandler commands.AssignBoxToContainerCommandHandler
	receiveBoxHandler           commands.ReceiveBoxCommandHandler
	createContainerHandler      commands.CreateContainerCommandHandler
	dispatchContainerHandler    commands.DispatchContainerCommandHandler
	receiveContainerHandler     commands.ReceiveContainerCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	listOrdersHandler      queries.ListOrdersQueryHandler
	activeWorkCountHandler queries.ActiveWorkCountQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	submitPaymentHandler commands.SubmitPaymentCommandHandler,
	resubmitPaymentHandler commands.ResubmitPaymentCommandHandler,
	validatePaymentHandler commands.ValidatePaymentCommandHandler,
	rejectPaymentHandler commands.RejectPaymentCommandHandler,
	assignOperatorHandler commands.AssignOperatorCommandHandler,
	createBoxHandler commands.CreateBoxCommandHandler,
	packBoxHandler commands.PackBoxCommandHandler,
	attachOrderToBoxHandler commands.AttachOrderToBoxCommandHandler,
	assignBoxToContainerHandler commands.AssignBoxToContainerCommandHandler,
	receiveBoxHandler commands.ReceiveBoxCommandHandler,
	createContainerHandler commands.CreateContainerCommandHandler,
	dispatchContainerHandler commands.DispatchContainerCommandHandler,
	receiveContainerHandler commands.ReceiveContainerCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	activeWorkCountHandler queries.ActiveWorkCountQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		advanceOrderHandler:         advanceOrderHandler,
		submitPaymentHandler:        submitPaymentHandler,
		resubmitPaymentHandler:      resubmitPaymentHandler,
		validatePaymentHandler:      validatePaymentHandler,
		rejectPaymentHandler:        rejectPaymentHandler,
		assignOperatorHandler:       assignOperatorHandler,
		createBoxHandler:            createBoxHandler,
		packBoxHandler:              packBoxHandler,
		attachOrderToBoxHandler:     attachOrderToBoxHandler,
		assignBoxToContainerHandler: assignBoxToContainerHandler,
		receiveBoxHandler:           receiveBoxHandler,
		createContainerHandler:      createContainerHandler,
		dispatchContainerHandler:    dispatchContainerHandler,
		receiveContainerHandler:     receiveContainerHandler,
		getOrderHandler:             getOrderHandler,
		listOrdersHandler:           listOrdersHandler,
		activeWorkCountHandler:      activeWorkCountHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/advance", s.AdvanceOrder)
	api.POST("/orders/:orderId/payment", s.SubmitPayment)
	api.POST("/orders/:orderId/payment/resubmit", s.ResubmitPayment)
	api.POST("/orders/:orderId/payment/validate", s.ValidatePayment)
	api.POST("/orders/:orderId/payment/reject", s.RejectPayment)
	api.PUT("/orders/:orderId/operator", s.AssignOperator)

	api.POST("/boxes", s.CreateBox)
	api.POST("/boxes/:boxId/pack", s.PackBox)
	api.POST("/boxes/:boxId/orders", s.AttachOrderToBox)
	api.PUT("/boxes/:boxId/container", s.AssignBoxToContainer)
	api.POST("/boxes/:boxId/receive", s.ReceiveBox)

	api.POST("/containers", s.CreateContainer)
	api.POST("/containers/:containerId/dispatch", s.DispatchContainer)
	api.POST("/containers/:containerId/receive", s.ReceiveContainer)

	api.GET("/operators/:operatorId/active-work", s.GetActiveWorkCount)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IntakeRequest is the body of POST /api/v1/orders: the full intake draft.
type IntakeRequest struct {
	ProductName         string `json:"productName"`
	Description         string `json:"description"`
	Quantity            int    `json:"quantity"`
	Specifications      string `json:"specifications"`
	DeliveryMode        string `json:"deliveryMode"`
	DestinationHandling string `json:"destinationHandling"`
}

// OrderResponse is the JSON rendering of one order snapshot.
type OrderResponse struct {
	ID                  string  `json:"id"`
	ClientID            string  `json:"clientId"`
	SourcingOperatorID  *string `json:"sourcingOperatorId,omitempty"`
	LogisticsOperatorID *string `json:"logisticsOperatorId,omitempty"`
	BoxID               *string `json:"boxId,omitempty"`
	State               int     `json:"state"`
	StateName           string  `json:"stateName"`
	PaymentStatus       string  `json:"paymentStatus"`
	ProductName         string  `json:"productName"`
	Description         string  `json:"description,omitempty"`
	Quantity            int     `json:"quantity"`
	Specifications      string  `json:"specifications,omitempty"`
	DeliveryMode        string  `json:"deliveryMode,omitempty"`
	DestinationHandling string  `json:"destinationHandling,omitempty"`
	Version             int64   `json:"version"`
}

// OrderListItem is one row of the order listing.
type OrderListItem struct {
	ID                  string  `json:"id"`
	ClientID            string  `json:"clientId"`
	SourcingOperatorID  *string `json:"sourcingOperatorId,omitempty"`
	LogisticsOperatorID *string `json:"logisticsOperatorId,omitempty"`
	State               int     `json:"state"`
	StateName           string  `json:"stateName"`
	PaymentStatus       string  `json:"paymentStatus"`
	ProductName         string  `json:"productName"`
}

// CreateOrder handles POST /api/v1/orders. The draft walks through the
// intake wizard so the same per-step gating applies whether an order
// arrives from the stepper UI or the API directly.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if actor.Role != services.RoleClient {
		return respondError(ctx,
			errs.NewUnauthorizedError(errs.DenyWrongRole, actor.ID.String()))
	}

	var req IntakeRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	wizard, err := intake.NewWizard(actor.ID, s.createOrderHandler.Handle)
	if err != nil {
		return respondError(ctx, err)
	}

	wizard.SetProductIdentity(req.ProductName, req.Description, req.Quantity, req.Specifications)
	if !wizard.Next() {
		return respondError(ctx, errs.NewValueIsRequiredError("productName"))
	}
	wizard.SetShipmentPreference(req.DeliveryMode, req.DestinationHandling)
	if !wizard.Next() {
		return respondError(ctx, errs.NewValueIsRequiredError("deliveryMode"))
	}

	orderID, err := wizard.Submit(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                  snapshot.ID.String(),
		ClientID:            snapshot.ClientID.String(),
		SourcingOperatorID:  optionalString(snapshot.SourcingOperatorID),
		LogisticsOperatorID: optionalString(snapshot.LogisticsOperatorID),
		BoxID:               optionalString(snapshot.BoxID),
		State:               int(snapshot.State),
		StateName:           snapshot.State.String(),
		PaymentStatus:       snapshot.PaymentStatus.String(),
		ProductName:         snapshot.ProductName,
		Description:         snapshot.Description,
		Quantity:            snapshot.Quantity,
		Specifications:      snapshot.Specifications,
		DeliveryMode:        snapshot.DeliveryMode,
		DestinationHandling: snapshot.DestinationHandling,
		Version:             snapshot.Version,
	})
}

// ListOrders handles GET /api/v1/orders?text=...&bucket=...
func (s *Server) ListOrders(ctx echo.Context) error {
	bucket := queries.StateBucket(ctx.QueryParam("bucket"))
	if bucket == "" {
		bucket = queries.BucketAll
	}

	query, err := queries.NewListOrdersQuery(ctx.QueryParam("text"), bucket)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderListItem, len(rows))
	for i, row := range rows {
		response[i] = OrderListItem{
			ID:                  row.ID.String(),
			ClientID:            row.ClientID.String(),
			SourcingOperatorID:  optionalString(row.SourcingOperatorID),
			LogisticsOperatorID: optionalString(row.LogisticsOperatorID),
			State:               int(row.State),
			StateName:           row.State.String(),
			PaymentStatus:       row.PaymentStatus.String(),
			ProductName:         row.ProductName,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveWorkCount handles GET /api/v1/operators/:operatorId/active-work.
func (s *Server) GetActiveWorkCount(ctx echo.Context) error {
	operatorID, err := pathUUID(ctx, "operatorId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewActiveWorkCountQuery(operatorID, services.Role(ctx.QueryParam("role")))
	if err != nil {
		return respondError(ctx, err)
	}

	count, err := s.activeWorkCountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"count": count})
}

// AdvanceOrder handles POST /api/v1/orders/:orderId/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		Target int `json:"target"`
	}
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewAdvanceOrderCommand(actor, orderID, order.State(req.Target))
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitPayment handles POST /api/v1/orders/:orderId/payment.
func (s *Server) SubmitPayment(ctx echo.Context) error {
	return s.handleOrderAction(ctx, func(actor services.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewSubmitPaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.submitPaymentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ResubmitPayment handles POST /api/v1/orders/:orderId/payment/resubmit.
func (s *Server) ResubmitPayment(ctx echo.Context) error {
	return s.handleOrderAction(ctx, func(actor services.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewResubmitPaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.resubmitPaymentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ValidatePayment handles POST /api/v1/orders/:orderId/payment/validate.
func (s *Server) ValidatePayment(ctx echo.Context) error {
	return s.handleOrderAction(ctx, func(actor services.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewValidatePaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.validatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// RejectPayment handles POST /api/v1/orders/:orderId/payment/reject.
func (s *Server) RejectPayment(ctx echo.Context) error {
	return s.handleOrderAction(ctx, func(actor services.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRejectPaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.rejectPaymentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// AssignOperator handles PUT /api/v1/orders/:orderId/operator.
func (s *Server) AssignOperator(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		OperatorID string `json:"operatorId"`
		Role       string `json:"role"`
	}
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("operatorId", err))
	}

	cmd, err := commands.NewAssignOperatorCommand(actor, orderID, operatorID, services.Role(req.Role))
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignOperatorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateBox handles POST /api/v1/boxes.
func (s *Server) CreateBox(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	boxID := kernel.NewUUID()
	cmd, err := commands.NewCreateBoxCommand(actor, boxID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"boxId": boxID.String()})
}

// PackBox handles POST /api/v1/boxes/:boxId/pack.
func (s *Server) PackBox(ctx echo.Context) error {
	return s.handleBoxAction(ctx, func(actor services.Actor, boxID kernel.UUID) error {
		cmd, err := commands.NewPackBoxCommand(actor, boxID)
		if err != nil {
			return err
		}
		return s.packBoxHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// AttachOrderToBox handles POST /api/v1/boxes/:boxId/orders.
func (s *Server) AttachOrderToBox(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	boxID, err := pathUUID(ctx, "boxId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	cmd, err := commands.NewAttachOrderToBoxCommand(actor, orderID, boxID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.attachOrderToBoxHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignBoxToContainer handles PUT /api/v1/boxes/:boxId/container.
func (s *Server) AssignBoxToContainer(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	boxID, err := pathUUID(ctx, "boxId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		ContainerID string `json:"containerId"`
	}
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	containerID, err := kernel.UUIDFromString(req.ContainerID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("containerId", err))
	}

	cmd, err := commands.NewAssignBoxToContainerCommand(actor, boxID, containerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignBoxToContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveBox handles POST /api/v1/boxes/:boxId/receive.
func (s *Server) ReceiveBox(ctx echo.Context) error {
	return s.handleBoxAction(ctx, func(actor services.Actor, boxID kernel.UUID) error {
		cmd, err := commands.NewReceiveBoxCommand(actor, boxID)
		if err != nil {
			return err
		}
		return s.receiveBoxHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CreateContainer handles POST /api/v1/containers.
func (s *Server) CreateContainer(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	containerID := kernel.NewUUID()
	cmd, err := commands.NewCreateContainerCommand(actor, containerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createContainerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"containerId": containerID.String()})
}

// DispatchContainer handles POST /api/v1/containers/:containerId/dispatch.
func (s *Server) DispatchContainer(ctx echo.Context) error {
	return s.handleContainerAction(ctx, func(actor services.Actor, containerID kernel.UUID) error {
		cmd, err := commands.NewDispatchContainerCommand(actor, containerID)
		if err != nil {
			return err
		}
		return s.dispatchContainerHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ReceiveContainer handles POST /api/v1/containers/:containerId/receive.
func (s *Server) ReceiveContainer(ctx echo.Context) error {
	return s.handleContainerAction(ctx, func(actor services.Actor, containerID kernel.UUID) error {
		cmd, err := commands.NewReceiveContainerCommand(actor, containerID)
		if err != nil {
			return err
		}
		return s.receiveContainerHandler.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) handleOrderAction(
	ctx echo.Context,
	action func(actor services.Actor, orderID kernel.UUID) error,
) error {
	return handlePathAction(ctx, "orderId", action)
}

func (s *Server) handleBoxAction(
	ctx echo.Context,
	action func(actor services.Actor, boxID kernel.UUID) error,
) error {
	return handlePathAction(ctx, "boxId", action)
}

func (s *Server) handleContainerAction(
	ctx echo.Context,
	action func(actor services.Actor, containerID kernel.UUID) error,
) error {
	return handlePathAction(ctx, "containerId", action)
}

func handlePathAction(
	ctx echo.Context,
	param string,
	action func(actor services.Actor, id kernel.UUID) error,
) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := pathUUID(ctx, param)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := action(actor, id); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func actorFromHeaders(ctx echo.Context) (services.Actor, error) {
	rawID := ctx.Request().Header.Get("X-Actor-Id")
	if rawID == "" {
		return services.Actor{}, errs.NewValueIsRequiredError("X-Actor-Id")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return services.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-Id", err)
	}

	role := services.Role(ctx.Request().Header.Get("X-Actor-Role"))
	switch role {
	case services.RoleClient, services.RoleSourcingOperator,
		services.RoleLogisticsOperator, services.RoleAdmin:
	default:
		return services.Actor{}, errs.NewValueIsInvalidError("X-Actor-Role")
	}

	return services.Actor{ID: id, Role: role}, nil
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// respondError maps application errors onto HTTP statuses. Everything
// unrecognized is a 500 with a generic message so internals never leak.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrDispatchFailed):
		status = http.StatusBadGateway
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, intake.ErrNotOnReviewStep):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}
