package metrics

// IncrementTicketCreated increments the ticket creation counter
func (m *Metrics) IncrementTicketCreated() {
	m.safeExecute("IncrementTicketCreated", func() {
		m.TicketCreatedTotal.Inc()
	})
}

// IncrementTicketMoved increments the committed-move counter
func (m *Metrics) IncrementTicketMoved() {
	m.safeExecute("IncrementTicketMoved", func() {
		m.TicketMovedTotal.Inc()
	})
}

// IncrementCategoryCreated increments the column creation counter
func (m *Metrics) IncrementCategoryCreated() {
	m.safeExecute("IncrementCategoryCreated", func() {
		m.CategoryCreatedTotal.Inc()
	})
}

// IncrementCategoriesReordered increments the column reorder counter
func (m *Metrics) IncrementCategoriesReordered() {
	m.safeExecute("IncrementCategoriesReordered", func() {
		m.CategoriesReorderedTotal.Inc()
	})
}

// IncrementDraftSaved increments the draft save counter
func (m *Metrics) IncrementDraftSaved() {
	m.safeExecute("IncrementDraftSaved", func() {
		m.DraftSavedTotal.Inc()
	})
}

// IncrementToastSent increments the expiry toast counter
func (m *Metrics) IncrementToastSent() {
	m.safeExecute("IncrementToastSent", func() {
		m.ToastSentTotal.Inc()
	})
}

// SetTicketsTotal sets the total tickets gauge
func (m *Metrics) SetTicketsTotal(count int64) {
	m.safeExecute("SetTicketsTotal", func() {
		m.TicketsTotal.Set(float64(count))
	})
}

// SetCategoriesTotal sets the total columns gauge
func (m *Metrics) SetCategoriesTotal(count int64) {
	m.safeExecute("SetCategoriesTotal", func() {
		m.CategoriesTotal.Set(float64(count))
	})
}
