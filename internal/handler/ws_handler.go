package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ticket-board-api/internal/dragdrop"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/editor"
	"ticket-board-api/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	wsCallTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSRect mirrors a rendered ticket row's geometry as sent by the client
type WSRect struct {
	TicketID string  `json:"ticketId"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
}

// WSMessage is the envelope for every board WebSocket message
type WSMessage struct {
	Type         string                 `json:"type"`
	TicketID     string                 `json:"ticketId,omitempty"`
	CategoryID   string                 `json:"categoryId,omitempty"`
	PointerY     float64                `json:"pointerY,omitempty"`
	Rects        []WSRect               `json:"rects,omitempty"`
	ToDescendant bool                   `json:"toDescendant,omitempty"`
	Title        string                 `json:"title,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Priority     string                 `json:"priority,omitempty"`
	ExpiryDate   *time.Time             `json:"expiryDate,omitempty"`
	Timestamp    time.Time              `json:"timestamp,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// Client is one open board tab. Its drag session and editor sessions are
// touched only from the connection's read loop, so they need no locking.
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	userID  uuid.UUID
	hub     *Hub
	drag    *dragdrop.Session
	editors map[uuid.UUID]*openEditor
}

// openEditor pairs an editor session with the column the ticket sat in
// when the editor opened, so a form echoing that column back is not
// mistaken for a pending move
type openEditor struct {
	session    *editor.Session
	categoryID uuid.UUID
}

// pendingCategory normalizes a form's column field: the ticket's own
// column means no move is pending
func (e *openEditor) pendingCategory(id *uuid.UUID) *uuid.UUID {
	if id != nil && *id == e.categoryID {
		return nil
	}
	return id
}

// Hub tracks every open board connection, grouped by user so a change
// made in one tab can be pushed to the user's other tabs
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register and unregister events until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.clientsMu.Unlock()

			h.logger.Info("Board client connected",
				zap.String("user_id", client.userID.String()))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.userID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.clientsMu.Unlock()

			h.logger.Info("Board client disconnected",
				zap.String("user_id", client.userID.String()))
		}
	}
}

// BroadcastToUser pushes a message to every open tab of one user.
// Sends happen under the read lock: Run closes a client's send channel
// only while holding the write lock, so a client still in the map has
// an open channel. Run is the sole closer; closing here would race the
// unregister path into a double close.
func (h *Hub) BroadcastToUser(userID uuid.UUID, message []byte) {
	var slow []*Client
	h.clientsMu.RLock()
	for client := range h.clients[userID] {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	h.clientsMu.RUnlock()

	for _, client := range slow {
		h.unregister <- client
	}
}

// SendToastToUser pushes an expiry toast to one user's open tabs.
// Returns whether the user had any connection to deliver to.
func (h *Hub) SendToastToUser(userID uuid.UUID, payload map[string]interface{}) bool {
	h.clientsMu.RLock()
	connected := len(h.clients[userID]) > 0
	h.clientsMu.RUnlock()
	if !connected {
		return false
	}

	message, err := json.Marshal(WSMessage{
		Type:      "toast",
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		h.logger.Warn("Failed to marshal toast", zap.Error(err))
		return false
	}

	h.BroadcastToUser(userID, message)
	return true
}

// IsUserConnected reports whether the user has at least one open tab
func (h *Hub) IsUserConnected(userID uuid.UUID) bool {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[userID]) > 0
}

// WSHandler owns the board WebSocket endpoint
type WSHandler struct {
	logger          *zap.Logger
	authService     service.AuthService
	boardService    service.BoardService
	ticketService   service.TicketService
	categoryService service.CategoryService
	draftService    service.DraftService
	hub             *Hub
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(
	logger *zap.Logger,
	authService service.AuthService,
	boardService service.BoardService,
	ticketService service.TicketService,
	categoryService service.CategoryService,
	draftService service.DraftService,
	hub *Hub,
) *WSHandler {
	return &WSHandler{
		logger:          logger,
		authService:     authService,
		boardService:    boardService,
		ticketService:   ticketService,
		categoryService: categoryService,
		draftService:    draftService,
		hub:             hub,
	}
}

// HandleBoardWebSocket godoc
// @Summary      Board WebSocket connection
// @Description  Opens the live board channel: drag sessions, editor sessions and server pushes
// @Tags         websocket
// @Param        token query string true "JWT access token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse
// @Router       /ws/board [get]
func (h *WSHandler) HandleBoardWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), wsCallTimeout)
	defer cancel()

	userID, err := h.authService.ValidateToken(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		hub:     h.hub,
		drag:    dragdrop.NewSession(),
		editors: make(map[uuid.UUID]*openEditor),
	}

	h.hub.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WSHandler) readPump(client *Client) {
	defer func() {
		h.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			h.logger.Warn("Failed to parse message", zap.Error(err))
			continue
		}

		if err := h.handleMessage(client, &wsMsg); err != nil {
			h.logger.Error("Failed to handle message",
				zap.String("type", wsMsg.Type),
				zap.Error(err))
			h.sendError(client, wsMsg.Type, err)
		}
	}
}

func (h *WSHandler) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) handleMessage(client *Client, wsMsg *WSMessage) error {
	switch wsMsg.Type {
	case "drag_start_ticket":
		return h.handleDragStartTicket(client, wsMsg)
	case "drag_start_column":
		return h.handleDragStartColumn(client, wsMsg)
	case "drag_over_tickets":
		return h.handleDragOverTickets(client, wsMsg)
	case "drag_over_column":
		return h.handleDragOverColumn(client, wsMsg)
	case "drag_enter":
		return h.handleDragEnter(client, wsMsg)
	case "drag_leave":
		return h.handleDragLeave(client, wsMsg)
	case "drag_drop":
		return h.handleDragDrop(client)
	case "drag_cancel":
		client.drag.Cancel()
		return nil
	case "editor_open":
		return h.handleEditorOpen(client, wsMsg)
	case "editor_update":
		return h.handleEditorUpdate(client, wsMsg)
	case "draft_save":
		return h.handleDraftSave(client, wsMsg)
	case "editor_save":
		return h.handleEditorSave(client, wsMsg)
	case "editor_close":
		return h.handleEditorClose(client, wsMsg)
	default:
		h.logger.Warn("Unknown message type", zap.String("type", wsMsg.Type))
	}
	return nil
}

func (h *WSHandler) handleDragStartTicket(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}
	client.drag.StartTicketDrag(ticketID, categoryID)
	return nil
}

func (h *WSHandler) handleDragStartColumn(client *Client, wsMsg *WSMessage) error {
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}
	client.drag.StartColumnDrag(categoryID)
	return nil
}

func (h *WSHandler) handleDragOverTickets(client *Client, wsMsg *WSMessage) error {
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}

	rects := make([]dragdrop.TicketRect, 0, len(wsMsg.Rects))
	for _, r := range wsMsg.Rects {
		ticketID, err := uuid.Parse(r.TicketID)
		if err != nil {
			continue
		}
		rects = append(rects, dragdrop.TicketRect{
			TicketID: ticketID,
			Rect:     dragdrop.Rect{Top: r.Top, Height: r.Height},
		})
	}

	client.drag.TicketDragOver(categoryID, wsMsg.PointerY, rects)
	return nil
}

func (h *WSHandler) handleDragOverColumn(client *Client, wsMsg *WSMessage) error {
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}
	client.drag.ColumnDragOver(categoryID)
	return nil
}

func (h *WSHandler) handleDragEnter(client *Client, wsMsg *WSMessage) error {
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}
	client.drag.Enter(categoryID)
	return nil
}

func (h *WSHandler) handleDragLeave(client *Client, wsMsg *WSMessage) error {
	categoryID, err := uuid.Parse(wsMsg.CategoryID)
	if err != nil {
		return err
	}
	client.drag.Leave(categoryID, wsMsg.ToDescendant)
	return nil
}

// handleDragDrop commits the pending drag. The tag on the payload keeps
// a column drop from being applied as a ticket move and vice versa.
func (h *WSHandler) handleDragDrop(client *Client) error {
	payload, ok := client.drag.Drop()
	if !ok {
		return h.sendJSON(client, WSMessage{Type: "drag_rejected"})
	}

	ctx, cancel := h.userContext(client)
	defer cancel()

	switch payload.Type {
	case dragdrop.DragTypeTicket:
		result, err := h.ticketService.MoveTicket(ctx, payload.TicketID, &dto.MoveTicketRequest{
			TargetCategoryID: payload.TargetCategoryID,
			Position:         payload.Position,
		})
		if err != nil {
			return err
		}
		if err := h.sendResult(client, "drag_committed", result); err != nil {
			return err
		}
		if result.Moved {
			h.broadcastBoard(client)
		}
		return nil

	case dragdrop.DragTypeColumn:
		targetIndex, err := h.columnIndex(ctx, payload.TargetCategoryID)
		if err != nil {
			return err
		}
		result, err := h.categoryService.ReorderCategories(ctx, &dto.ReorderCategoriesRequest{
			CategoryID:  payload.ColumnID,
			TargetIndex: targetIndex,
		})
		if err != nil {
			return err
		}
		if err := h.sendResult(client, "drag_committed", result); err != nil {
			return err
		}
		h.broadcastBoard(client)
		return nil
	}
	return nil
}

// columnIndex resolves a column to its current board index for a column
// drop, whose target is the hovered column
func (h *WSHandler) columnIndex(ctx context.Context, categoryID uuid.UUID) (int, error) {
	categories, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	for i, category := range categories {
		if category.ID == categoryID {
			return i, nil
		}
	}
	return len(categories) - 1, nil
}

func (h *WSHandler) handleEditorOpen(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}

	ctx, cancel := h.userContext(client)
	defer cancel()

	state, err := h.draftService.OpenEditor(ctx, ticketID)
	if err != nil {
		return err
	}

	// Mirror the opening state into a session so later editor_update
	// messages can track dirtiness against the ticket's persisted values
	es := &openEditor{
		session: editor.NewSession(editor.Fields{
			Title:       state.Ticket.Title,
			Description: state.Ticket.Description,
			Priority:    state.Ticket.Priority,
			ExpiryDate:  state.Ticket.ExpiryDate,
		}),
		categoryID: state.Ticket.CategoryID,
	}
	if state.Draft != nil {
		es.session.ApplyDraft(state.Draft.ID, editor.Fields{
			Title:       state.Draft.Title,
			Description: state.Draft.Description,
			Priority:    state.Draft.Priority,
			ExpiryDate:  state.Draft.ExpiryDate,
			CategoryID:  es.pendingCategory(state.Draft.CategoryID),
		}, state.Draft.UpdatedAt, state.Ticket.UpdatedAt)
	}
	client.editors[ticketID] = es

	return h.sendResult(client, "editor_state", state)
}

func (h *WSHandler) handleEditorUpdate(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}
	es, ok := client.editors[ticketID]
	if !ok {
		return h.sendJSON(client, WSMessage{Type: "editor_not_open", TicketID: wsMsg.TicketID})
	}

	es.session.Edit(editor.Fields{
		Title:       wsMsg.Title,
		Description: wsMsg.Description,
		Priority:    wsMsg.Priority,
		ExpiryDate:  wsMsg.ExpiryDate,
		CategoryID:  es.pendingCategory(parseOptionalUUID(wsMsg.CategoryID)),
	})

	return h.sendJSON(client, WSMessage{
		Type:     "editor_dirty",
		TicketID: wsMsg.TicketID,
		Payload:  map[string]interface{}{"dirty": es.session.Dirty()},
	})
}

// handleDraftSave stashes the editor's work as a draft without touching
// the ticket; the client autosaves through here while typing
func (h *WSHandler) handleDraftSave(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}

	ctx, cancel := h.userContext(client)
	defer cancel()

	es := client.editors[ticketID]
	draft, err := h.draftService.SaveDraft(ctx, h.draftRequest(ticketID, es, wsMsg))
	if err != nil {
		return err
	}
	if es != nil {
		es.session.MarkSaved(draft.ID)
	}

	return h.sendResult(client, "draft_saved", draft)
}

// handleEditorSave commits the editor: the ticket is updated, a pending
// column move lands the ticket at the end of the target column, and the
// stored draft is cleared. The session is rebased onto the saved values
// so it reads clean afterwards.
func (h *WSHandler) handleEditorSave(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}

	ctx, cancel := h.userContext(client)
	defer cancel()

	title := wsMsg.Title
	description := wsMsg.Description
	updateReq := &dto.UpdateTicketRequest{
		Title:       &title,
		Description: &description,
		ExpiryDate:  wsMsg.ExpiryDate,
		// The form carries the whole state; a missing date was removed
		ClearExpiryDate: wsMsg.ExpiryDate == nil,
	}
	if wsMsg.Priority != "" {
		priority := wsMsg.Priority
		updateReq.Priority = &priority
	}
	ticket, err := h.ticketService.UpdateTicket(ctx, ticketID, updateReq)
	if err != nil {
		return err
	}

	if target := parseOptionalUUID(wsMsg.CategoryID); target != nil && *target != ticket.CategoryID {
		position, err := h.columnTicketCount(ctx, *target)
		if err != nil {
			return err
		}
		result, err := h.ticketService.MoveTicket(ctx, ticketID, &dto.MoveTicketRequest{
			TargetCategoryID: *target,
			Position:         position,
		})
		if err != nil {
			return err
		}
		ticket = &result.Ticket
	}

	if err := h.draftService.DeleteDraft(ctx, ticketID); err != nil {
		h.logger.Warn("Failed to clear draft after save",
			zap.String("ticket_id", ticketID.String()),
			zap.Error(err))
	}

	if es, ok := client.editors[ticketID]; ok {
		saved := editor.Fields{
			Title:       ticket.Title,
			Description: ticket.Description,
			Priority:    ticket.Priority,
			ExpiryDate:  ticket.ExpiryDate,
		}
		es.session.CommitTicket(saved)
		es.session.Edit(saved)
		es.categoryID = ticket.CategoryID
	}

	if err := h.sendResult(client, "ticket_saved", ticket); err != nil {
		return err
	}
	h.broadcastBoard(client)
	return nil
}

// columnTicketCount returns how many tickets a column holds, which is
// the position a save-driven move appends at
func (h *WSHandler) columnTicketCount(ctx context.Context, categoryID uuid.UUID) (int, error) {
	board, err := h.boardService.GetBoard(ctx)
	if err != nil {
		return 0, err
	}
	for _, category := range board.Categories {
		if category.ID == categoryID {
			return len(category.Tickets), nil
		}
	}
	return 0, nil
}

// handleEditorClose closes an editor session: a dirty editor keeps its
// work as a draft, a clean close writes nothing
func (h *WSHandler) handleEditorClose(client *Client, wsMsg *WSMessage) error {
	ticketID, err := uuid.Parse(wsMsg.TicketID)
	if err != nil {
		return err
	}
	es := client.editors[ticketID]
	delete(client.editors, ticketID)

	if es == nil || !es.session.Dirty() {
		// A stored draft, if any, stays until a save or explicit delete
		return h.sendJSON(client, WSMessage{Type: "editor_closed", TicketID: wsMsg.TicketID})
	}

	ctx, cancel := h.userContext(client)
	defer cancel()

	fields := es.session.Current()
	draft, err := h.draftService.SaveDraft(ctx, &dto.SaveDraftRequest{
		ID:          es.session.DraftID(),
		TicketID:    ticketID,
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		ExpiryDate:  fields.ExpiryDate,
		CategoryID:  fields.CategoryID,
	})
	if err != nil {
		return err
	}
	return h.sendResult(client, "editor_closed", draft)
}

func (h *WSHandler) draftRequest(ticketID uuid.UUID, es *openEditor, wsMsg *WSMessage) *dto.SaveDraftRequest {
	category := parseOptionalUUID(wsMsg.CategoryID)
	if es != nil {
		category = es.pendingCategory(category)
	}
	req := &dto.SaveDraftRequest{
		TicketID:    ticketID,
		Title:       wsMsg.Title,
		Description: wsMsg.Description,
		Priority:    wsMsg.Priority,
		ExpiryDate:  wsMsg.ExpiryDate,
		CategoryID:  category,
	}
	if es != nil {
		req.ID = es.session.DraftID()
		es.session.Edit(editor.Fields{
			Title:       wsMsg.Title,
			Description: wsMsg.Description,
			Priority:    wsMsg.Priority,
			ExpiryDate:  wsMsg.ExpiryDate,
			CategoryID:  category,
		})
	}
	return req
}

// broadcastBoard pushes the refreshed board to all of the user's tabs
func (h *WSHandler) broadcastBoard(client *Client) {
	ctx, cancel := h.userContext(client)
	defer cancel()

	board, err := h.boardService.RefreshBoard(ctx)
	if err != nil {
		h.logger.Warn("Failed to refresh board for broadcast",
			zap.String("user_id", client.userID.String()),
			zap.Error(err))
		return
	}

	message, err := json.Marshal(map[string]interface{}{
		"type":      "board_updated",
		"timestamp": time.Now(),
		"board":     board,
	})
	if err != nil {
		h.logger.Warn("Failed to marshal board update", zap.Error(err))
		return
	}
	h.hub.BroadcastToUser(client.userID, message)
}

func (h *WSHandler) userContext(client *Client) (context.Context, context.CancelFunc) {
	ctx := context.WithValue(context.Background(), "user_id", client.userID)
	return context.WithTimeout(ctx, wsCallTimeout)
}

func (h *WSHandler) sendResult(client *Client, msgType string, result interface{}) error {
	message, err := json.Marshal(map[string]interface{}{
		"type":   msgType,
		"result": result,
	})
	if err != nil {
		return err
	}
	select {
	case client.send <- message:
	default:
	}
	return nil
}

func (h *WSHandler) sendJSON(client *Client, wsMsg WSMessage) error {
	message, err := json.Marshal(wsMsg)
	if err != nil {
		return err
	}
	select {
	case client.send <- message:
	default:
	}
	return nil
}

func (h *WSHandler) sendError(client *Client, msgType string, err error) {
	h.sendJSON(client, WSMessage{
		Type: "error",
		Payload: map[string]interface{}{
			"source": msgType,
			"error":  err.Error(),
		},
	})
}

func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
