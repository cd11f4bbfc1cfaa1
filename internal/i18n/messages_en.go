package i18n

func loadEnglishMessages() {
	en := messages[LangEN]

	// Application
	en["app.name"] = "Voyago"
	en["app.tagline"] = "Your travel assistant"
	en["app.goodbye"] = "Goodbye! Safe travels."

	// Chat
	en["chat.prompt"] = "You"
	en["chat.assistant"] = "Voyago"
	en["chat.thinking"] = "Thinking..."
	en["chat.welcome"] = "Hi! I can search flights, find hotels and book trips. Where would you like to go?"
	en["chat.fallback"] = "I can help you search flights, find hotels, book trips or share destination tips. Try something like \"flights from GRU to GIG\"."

	// Loading states
	en["loading.search_flights"] = "Searching flights..."
	en["loading.search_hotels"] = "Searching hotels..."
	en["loading.booking_started"] = "Processing your booking..."
	en["loading.booking_payment"] = "Confirming payment..."

	// Announcements
	en["announce.flight_card"] = "Found flight %s for %s %.2f"
	en["announce.hotel_card"] = "Found %s (%d stars) for %s %.2f per night"
	en["announce.price_breakdown"] = "Trip total: %s %.2f (including taxes and fees)"
	en["announce.confirmation"] = "Booking confirmed! Your PNR is %s"
	en["announce.error"] = "Something went wrong: %s"

	// Errors
	en["error.network"] = "Network connection failed"
	en["error.timeout"] = "The service took too long to respond"
	en["error.server"] = "Internal server error"
	en["error.validation"] = "The request data is invalid"
	en["error.payment"] = "Payment was declined"
	en["error.tool_not_found"] = "Unknown operation"
	en["error.circuit_open"] = "Service temporarily unavailable, please try again in a moment"
	en["error.retry_hint"] = "Tap retry to try again"
	en["error.no_operation"] = "Nothing to retry yet"

	// Result cards
	en["flight.direct"] = "direct"
	en["flight.stops"] = "%d stop(s)"
	en["price.title"] = "Price breakdown"
	en["price.subtotal"] = "Subtotal"
	en["price.tax"] = "Taxes"
	en["price.fees"] = "Fees"
	en["price.total"] = "Total"
	en["confirmation.booking_id"] = "Booking:"
	en["confirmation.hotel_code"] = "Hotel reservation:"

	// Tools
	en["tool.executing"] = "Executing %s"
	en["tool.completed"] = "Completed %s"
	en["tool.failed"] = "%s failed: %s"

	// Terminal interface
	en["tui.placeholder"] = "Where would you like to go?"
	en["tui.busy"] = "Still working on the previous request (Ctrl+C cancels)"
	en["tui.cleared"] = "Conversation cleared"
	en["tui.canceled"] = "Canceled"
	en["tui.retrying"] = "Retrying the last operation..."
	en["tui.help"] = "enter send | ctrl+r retry | ctrl+l clear | ctrl+c quit"

	// Web
	en["web.rate_limited"] = "Too many requests, slow down"
	en["web.bad_request"] = "Invalid request body"
	en["web.session_not_found"] = "Session not found"
}
