package scraper

// CSS selectors used across the scraper.
// Centralising them makes future updates trivial.
const (
	// Hotel search results page
	SearchResultCardSelector = `[data-testid="property-card"], .sr_property_block, .sr-hotel`
	SearchResultLinkSelector = `a[data-testid="title-link"], a.hotel_name_link, h3 a`
	SearchResultNameSelector = `[data-testid="title"], .sr-hotel__name`

	// Rates page: primary pricing table, then the loose fallback
	RateTableSelector     = `table.hprt-table, #hprt-table, table[data-et-view]`
	RateRowSelector       = `tbody tr, tr.js-rt-block-row`
	RateRoomCellSelector  = `.hprt-roomtype-icon-link, a.hprt-roomtype-link, .room-name, td.hprt-table-cell-roomtype`
	RatePriceCellSelector = `.prco-valign-middle, .bui-price-display__value, .hprt-price-block, td.hprt-table-cell-price`

	LoosePriceNodeSelector = `.prco-valign-middle, .bui-price-display__value, [data-price], .price, .rate-amount`
	RoomContainerSelector  = `.hprt-block, .room-block, [data-room-id], .roomstable, tr`
	RoomLabelSelector      = `.hprt-roomtype-icon-link, .room-name, h3, h2, .roomtype`

	// Events page
	EventAnchorSelector = `a[href*="/e/"], a[href*="/events/"], a.event-card-link`
	EventDateSelector   = `time[datetime], .event-date, [data-subtitle] time`
	EventVenueSelector  = `.event-venue, .venue-name, [data-event-location]`

	// Content-present markers waited on after load; any one is enough.
	RatesReadyMarker  = `table.hprt-table, #hprt-table, .prco-valign-middle, .bui-price-display__value`
	EventsReadyMarker = `script[type="application/ld+json"], a[href*="/e/"], .event-card-link`
	SearchReadyMarker = `[data-testid="property-card"], .sr_property_block`
)

// ConsentSelectors are probed in priority order on every first navigation of
// a session, in the main document and all same-origin frames.
var ConsentSelectors = []string{
	`#onetrust-accept-btn-handler`,
	`button[data-testid="accept-cookies"]`,
	`button#didomi-notice-agree-button`,
	`button[aria-label="Aceptar"]`,
	`button[mode="primary"].cookie-accept`,
	`.cc-btn.cc-allow`,
}
