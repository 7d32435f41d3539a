package constant

const (
	// PersonaSystemPrompt seeds every fresh conversation history and leads
	// every prompt sent to the text-generation delegate.
	PersonaSystemPrompt = "Bạn là trợ lý AI của cửa hàng BooksLand, nhiệm vụ hỗ trợ khách hàng tìm sách, " +
		"giới thiệu sản phẩm và trả lời thân thiện, súc tích. Luôn xưng là trợ lý BooksLand."

	// Fixed template replies (no delegate call)
	GreetingReply = "Xin chào! Mình là trợ lý BooksLand. Bạn đang tìm cuốn sách nào, hoặc gửi ảnh bìa sách để mình tìm giúp nhé!"
	ResetReply    = "Cuộc trò chuyện đã được làm mới. Bạn cần tìm cuốn sách nào ạ?"
	WhichBookAsk  = "Bạn muốn hỏi về cuốn sách nào ạ? Hãy cho mình biết tên sách hoặc gửi ảnh bìa nhé."
	UnknownReply  = "Xin lỗi, mình chưa hiểu ý bạn. Bạn có thể nhập tên sách hoặc gửi ảnh bìa sách để mình tìm giúp."

	// Per-intent apologies. A miss is a first-class outcome, not an error.
	NoMatchApology   = "Xin lỗi, mình không tìm thấy cuốn sách phù hợp trong cửa hàng. Bạn thử mô tả rõ hơn hoặc gửi ảnh bìa nhé."
	ImageMissApology = "Xin lỗi, mình chưa nhận ra cuốn sách trong ảnh. Bạn thử chụp rõ bìa sách hơn giúp mình nhé."
	ColorMissApology = "Xin lỗi, mình chưa tìm được cuốn sách nào có bìa màu như bạn mô tả."
	PriceMissApology = "Xin lỗi, mình chưa rõ bạn muốn hỏi giá cuốn sách nào. Bạn cho mình xin tên sách nhé."

	AlternativesLead = "Không sao ạ! Bạn có thể tham khảo thêm những cuốn này:"

	// Intent-specific instructions for the delegate prompt
	InstructionAvailability = "Xác nhận cuốn sách đang có sẵn tại cửa hàng BooksLand, giới thiệu ngắn gọn nội dung và hỏi khách có muốn mua không."
	InstructionPrice        = "Báo giá cuốn sách kèm tên tác giả, trả lời ngắn gọn và hỏi khách có muốn mua không."
	InstructionConfirm      = "Khách vừa xác nhận quan tâm. Xác nhận sách còn hàng, nhắc lại giá và mời khách chốt đơn."
	InstructionColorList    = "Liệt kê các cuốn sách tìm được theo màu bìa, kèm tổng giá, và mở đầu bằng một câu hỏi xác nhận."
	InstructionImageSummary = "Tóm tắt các cuốn sách nhận ra từ ảnh khách gửi, kèm tổng giá, và hỏi khách muốn xem cuốn nào."

	// Prompt shaping
	HistoryTurnsInPrompt = 3   // last N history turns fed to the delegate
	DescriptionRuneLimit = 300 // fact-block description truncation

	// Catalog sampling
	SuggestionSampleSize  = 3 // alternatives drawn on ConfirmNo resample
	RecommendedSampleSize = 6 // /recommended endpoint
)
