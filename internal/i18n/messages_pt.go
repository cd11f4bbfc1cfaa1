package i18n

func loadPortugueseMessages() {
	pt := messages[LangPtBR]

	// Application
	pt["app.name"] = "Voyago"
	pt["app.tagline"] = "Seu assistente de viagens"
	pt["app.goodbye"] = "Até logo! Boa viagem."

	// Chat
	pt["chat.prompt"] = "Você"
	pt["chat.assistant"] = "Voyago"
	pt["chat.thinking"] = "Pensando..."
	pt["chat.welcome"] = "Olá! Posso buscar voos, encontrar hotéis e reservar viagens. Para onde você quer ir?"
	pt["chat.fallback"] = "Posso ajudar a buscar voos, encontrar hotéis, reservar viagens ou dar dicas de destinos. Tente algo como \"voos de GRU para GIG\"."

	// Loading states
	pt["loading.search_flights"] = "Buscando voos..."
	pt["loading.search_hotels"] = "Buscando hotéis..."
	pt["loading.booking_started"] = "Processando sua reserva..."
	pt["loading.booking_payment"] = "Confirmando pagamento..."

	// Announcements
	pt["announce.flight_card"] = "Voo %s encontrado por %s %.2f"
	pt["announce.hotel_card"] = "%s (%d estrelas) por %s %.2f a diária"
	pt["announce.price_breakdown"] = "Total da viagem: %s %.2f (com taxas e tarifas)"
	pt["announce.confirmation"] = "Reserva confirmada! Seu PNR é %s"
	pt["announce.error"] = "Algo deu errado: %s"

	// Errors
	pt["error.network"] = "Falha na conexão de rede"
	pt["error.timeout"] = "O serviço demorou demais para responder"
	pt["error.server"] = "Erro interno do servidor"
	pt["error.validation"] = "Os dados da solicitação são inválidos"
	pt["error.payment"] = "O pagamento foi recusado"
	pt["error.tool_not_found"] = "Operação desconhecida"
	pt["error.circuit_open"] = "Serviço temporariamente indisponível, tente novamente em instantes"
	pt["error.retry_hint"] = "Toque em tentar novamente"
	pt["error.no_operation"] = "Nada para repetir ainda"

	// Result cards
	pt["flight.direct"] = "direto"
	pt["flight.stops"] = "%d parada(s)"
	pt["price.title"] = "Resumo de preços"
	pt["price.subtotal"] = "Subtotal"
	pt["price.tax"] = "Impostos"
	pt["price.fees"] = "Tarifas"
	pt["price.total"] = "Total"
	pt["confirmation.booking_id"] = "Reserva:"
	pt["confirmation.hotel_code"] = "Reserva do hotel:"

	// Tools
	pt["tool.executing"] = "Executando %s"
	pt["tool.completed"] = "%s concluído"
	pt["tool.failed"] = "%s falhou: %s"

	// Interface de terminal
	pt["tui.placeholder"] = "Para onde você quer ir?"
	pt["tui.busy"] = "Ainda processando a solicitação anterior (Ctrl+C cancela)"
	pt["tui.cleared"] = "Conversa limpa"
	pt["tui.canceled"] = "Cancelado"
	pt["tui.retrying"] = "Tentando a última operação novamente..."
	pt["tui.help"] = "enter enviar | ctrl+r repetir | ctrl+l limpar | ctrl+c sair"

	// Web
	pt["web.rate_limited"] = "Muitas solicitações, vá com calma"
	pt["web.bad_request"] = "Corpo da solicitação inválido"
	pt["web.session_not_found"] = "Sessão não encontrada"
}
