package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"booksland-be/internal/constant"
	"booksland-be/pkg/chat/intent"
	"booksland-be/pkg/chat/match"
	"booksland-be/pkg/chat/reply"
	"booksland-be/pkg/chat/state"
	"booksland-be/pkg/imaging"
	"booksland-be/pkg/llm"
	"booksland-be/pkg/store"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var testBooks = []store.Book{
	{ID: "11111111-1111-1111-1111-111111111111", Title: "1984", Author: "George Orwell", Price: 120000, Stock: 4},
	{ID: "22222222-2222-2222-2222-222222222222", Title: "Nhà Giả Kim", Author: "Paulo Coelho", Price: 95000, Stock: 2},
	{ID: "33333333-3333-3333-3333-333333333333", Title: "Dune", Author: "Frank Herbert", Price: 180000, Stock: 1},
}

// --- stubs ---

type repoStub struct {
	data map[string]*store.Conversation
}

func newRepoStub() *repoStub {
	return &repoStub{data: make(map[string]*store.Conversation)}
}

func (r *repoStub) Get(id string) (*store.Conversation, bool) {
	c, ok := r.data[id]
	return c, ok
}
func (r *repoStub) Save(c *store.Conversation) { r.data[c.ID] = c }
func (r *repoStub) Delete(id string)           { delete(r.data, id) }

type catalogStub struct {
	books       []store.Book
	err         error
	sampleCalls int
}

func (c *catalogStub) All(_ context.Context) ([]store.Book, error) {
	return c.books, c.err
}

func (c *catalogStub) FindByID(_ context.Context, id string) (*store.Book, error) {
	for i := range c.books {
		if c.books[i].ID == id {
			return &c.books[i], nil
		}
	}
	return nil, c.err
}

func (c *catalogStub) Sample(_ context.Context, n int) ([]store.Book, error) {
	c.sampleCalls++
	if c.err != nil {
		return nil, c.err
	}
	if len(c.books) > n {
		return c.books[:n], nil
	}
	return c.books, nil
}

type colorStub struct {
	candidates []store.MatchCandidate
	err        error
	gotColor   string
	calls      int
}

func (c *colorStub) MatchByColor(_ context.Context, color string) ([]store.MatchCandidate, error) {
	c.calls++
	c.gotColor = color
	return c.candidates, c.err
}

type semanticStub struct {
	candidates []store.MatchCandidate
	err        error
	gotImage   string
	calls      int
}

func (s *semanticStub) MatchText(_ context.Context, _ string, _ []store.Book) ([]store.MatchCandidate, error) {
	s.calls++
	return s.candidates, s.err
}

func (s *semanticStub) MatchImage(_ context.Context, _, imageB64 string, _ []store.Book) ([]store.MatchCandidate, error) {
	s.calls++
	s.gotImage = imageB64
	return s.candidates, s.err
}

func (s *semanticStub) Search(_ context.Context, _ string) ([]store.MatchCandidate, error) {
	s.calls++
	return s.candidates, s.err
}

type downLLM struct{}

func (downLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return "", errors.New("llm down")
}
func (downLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return "", errors.New("llm down")
}

func newTestOrchestrator(repo *repoStub, colorSvc *colorStub, semSvc *semanticStub, catalog *catalogStub) *Orchestrator {
	lg := log.New(io.Discard, "", 0)
	return NewOrchestrator(
		state.NewManager(repo, lg),
		match.NewTitleMatcher(),
		match.NewColorMatcher(colorSvc, lg),
		match.NewSemanticMatcher(semSvc, lg),
		reply.NewComposer(downLLM{}, lg),
		catalog,
		lg,
	)
}

func candidatesFor(books ...store.Book) []store.MatchCandidate {
	out := make([]store.MatchCandidate, 0, len(books))
	for i, b := range books {
		out = append(out, store.MatchCandidate{Book: b, Score: 0.9 - float64(i)*0.1, Rank: i + 1})
	}
	return out
}

// --- scenarios ---

func TestPriceQueryByTitle(t *testing.T) {
	repo := newRepoStub()
	colorSvc := &colorStub{}
	semSvc := &semanticStub{}
	o := newTestOrchestrator(repo, colorSvc, semSvc, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "1984 giá bao nhiêu?"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	if res.Intent != intent.IntentPriceQuery {
		t.Errorf("intent = %s, want PRICE_QUERY", res.Intent)
	}
	if colorSvc.calls != 0 || semSvc.calls != 0 {
		t.Errorf("title hit must resolve locally, got %d color and %d semantic calls", colorSvc.calls, semSvc.calls)
	}
	for _, want := range []string{"120000", "George Orwell"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply %q missing %q", res.Reply, want)
		}
	}

	conv, ok := repo.Get("c1")
	if !ok {
		t.Fatal("conversation not persisted")
	}
	if conv.LastBestMatch == nil || conv.LastBestMatch.Title != "1984" {
		t.Errorf("LastBestMatch = %+v, want 1984", conv.LastBestMatch)
	}
	if len(conv.LastSuggested) != 1 {
		t.Errorf("LastSuggested has %d books, want 1", len(conv.LastSuggested))
	}
	if conv.History[0].Role != store.RoleSystem {
		t.Errorf("history must open with the persona system message")
	}
}

func TestConfirmYesAfterMatch(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	if _, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "1984 giá bao nhiêu?"}); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "có"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Intent != intent.IntentConfirmYes {
		t.Errorf("intent = %s, want CONFIRM_YES", res.Intent)
	}
	for _, want := range []string{"1984", "120000"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply %q missing %q", res.Reply, want)
		}
	}
}

func TestConfirmYesWithoutContext(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "có"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.WhichBookAsk {
		t.Errorf("reply = %q, want the which-book prompt", res.Reply)
	}
}

func TestConfirmNoFallsBackToSuggestions(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	if _, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "1984 giá bao nhiêu?"}); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "không"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Intent != intent.IntentConfirmNo {
		t.Errorf("intent = %s, want CONFIRM_NO", res.Intent)
	}
	if !strings.Contains(res.Reply, constant.AlternativesLead) {
		t.Errorf("reply %q should open with the alternatives lead", res.Reply)
	}
}

// Rejecting right after a color listing must hand back the books already on
// the table; no matcher and no catalog resample should run for that turn.
func TestConfirmNoAfterColorQueryReusesSuggestions(t *testing.T) {
	repo := newRepoStub()
	colorSvc := &colorStub{candidates: candidatesFor(testBooks[2], testBooks[0])}
	semSvc := &semanticStub{}
	catalog := &catalogStub{books: testBooks}
	o := newTestOrchestrator(repo, colorSvc, semSvc, catalog)

	if _, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "tìm sách bìa xanh"}); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "không"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	for _, want := range []string{constant.AlternativesLead, "Dune", "1984"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply %q missing %q", res.Reply, want)
		}
	}
	if colorSvc.calls != 1 {
		t.Errorf("color matcher calls = %d, want only the setup turn's 1", colorSvc.calls)
	}
	if semSvc.calls != 0 {
		t.Errorf("semantic matcher calls = %d, want 0", semSvc.calls)
	}
	if catalog.sampleCalls != 0 {
		t.Errorf("catalog samples = %d, rejection with suggestions on hand must not resample", catalog.sampleCalls)
	}
}

func TestColorQueryListsAndTotals(t *testing.T) {
	repo := newRepoStub()
	colorSvc := &colorStub{candidates: candidatesFor(testBooks[2], testBooks[0])}
	o := newTestOrchestrator(repo, colorSvc, &semanticStub{}, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "tìm sách bìa xanh"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	if colorSvc.gotColor != "blue" {
		t.Errorf("color token = %q, want blue", colorSvc.gotColor)
	}
	for _, want := range []string{"Dune", "1984", "300000"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply %q missing %q", res.Reply, want)
		}
	}

	conv, _ := repo.Get("c1")
	if conv.LastBestMatch == nil || conv.LastBestMatch.Title != "Dune" {
		t.Errorf("LastBestMatch = %+v, want top-ranked Dune", conv.LastBestMatch)
	}
	if len(conv.LastSuggested) != 2 {
		t.Errorf("LastSuggested has %d books, want 2", len(conv.LastSuggested))
	}
}

func TestColorServiceFailureDegrades(t *testing.T) {
	repo := newRepoStub()
	colorSvc := &colorStub{err: errors.New("clip down")}
	o := newTestOrchestrator(repo, colorSvc, &semanticStub{}, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "sách bìa đỏ"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.ColorMissApology {
		t.Errorf("reply = %q, want color-miss apology", res.Reply)
	}
}

// An exact title hit is resolved from the catalog alone; the embedding
// service must stay untouched for both lookup and availability phrasings.
func TestExactTitleHitSkipsSemantic(t *testing.T) {
	repo := newRepoStub()
	semSvc := &semanticStub{candidates: candidatesFor(testBooks[0])}
	o := newTestOrchestrator(repo, &colorStub{}, semSvc, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "tìm cuốn Nhà Giả Kim"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.MatchedBook == nil || res.MatchedBook.Title != "Nhà Giả Kim" {
		t.Errorf("MatchedBook = %+v, want Nhà Giả Kim", res.MatchedBook)
	}

	res, err = o.Handle(context.Background(), Query{ConversationID: "c2", Text: "cửa hàng có Dune không?"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Intent != intent.IntentAvailabilityQuery {
		t.Errorf("intent = %s, want AVAILABILITY_QUERY", res.Intent)
	}
	if res.MatchedBook == nil || res.MatchedBook.Title != "Dune" {
		t.Errorf("MatchedBook = %+v, want Dune", res.MatchedBook)
	}

	if semSvc.calls != 0 {
		t.Errorf("semantic matcher calls = %d, want 0", semSvc.calls)
	}
}

func TestTitleMissFallsThroughToSemantic(t *testing.T) {
	repo := newRepoStub()
	semSvc := &semanticStub{candidates: candidatesFor(testBooks[1])}
	o := newTestOrchestrator(repo, &colorStub{}, semSvc, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "truyện về cậu bé chăn cừu đi tìm kho báu"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.MatchedBook == nil || res.MatchedBook.Title != "Nhà Giả Kim" {
		t.Errorf("MatchedBook = %+v, want Nhà Giả Kim", res.MatchedBook)
	}
}

func TestSemanticFailureApologizes(t *testing.T) {
	repo := newRepoStub()
	semSvc := &semanticStub{err: errors.New("clip down")}
	o := newTestOrchestrator(repo, &colorStub{}, semSvc, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "truyện về cậu bé chăn cừu đi tìm kho báu"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.NoMatchApology {
		t.Errorf("reply = %q, want no-match apology", res.Reply)
	}
}

func TestImageQuery(t *testing.T) {
	repo := newRepoStub()
	semSvc := &semanticStub{candidates: candidatesFor(testBooks[0], testBooks[2])}
	o := newTestOrchestrator(repo, &colorStub{}, semSvc, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Image: tinyPNG})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Intent != intent.IntentImageQuery {
		t.Errorf("intent = %s, want IMAGE_QUERY", res.Intent)
	}
	if !strings.HasPrefix(semSvc.gotImage, "data:image/png;base64,") {
		t.Errorf("image not forwarded as a normalized data URL")
	}
	for _, want := range []string{"1984", "Dune", "300000"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("reply %q missing %q", res.Reply, want)
		}
	}

	conv, _ := repo.Get("c1")
	if len(conv.History) < 2 || !strings.Contains(conv.History[1].Content, "Ảnh bìa sách") {
		t.Errorf("user turn should record the image placeholder, history = %+v", conv.History)
	}
}

func TestImageQueryMiss(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Image: tinyPNG})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.ImageMissApology {
		t.Errorf("reply = %q, want image-miss apology", res.Reply)
	}
}

func TestInvalidImageIsTheOnlyError(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	_, err := o.Handle(context.Background(), Query{ConversationID: "c1", Image: "not-base64!!"})
	if !errors.Is(err, imaging.ErrInvalidImage) {
		t.Errorf("err = %v, want ErrInvalidImage", err)
	}
}

func TestResetClearsState(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	if _, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "1984 giá bao nhiêu?"}); err != nil {
		t.Fatalf("setup turn failed: %v", err)
	}

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "reset"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.ResetReply {
		t.Errorf("reply = %q, want reset template", res.Reply)
	}
	if _, ok := repo.Get("c1"); ok {
		t.Error("conversation should be gone after reset")
	}
}

func TestGreeting(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{books: testBooks})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "xin chào"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.GreetingReply {
		t.Errorf("reply = %q, want greeting template", res.Reply)
	}
}

func TestCatalogFailureStillReplies(t *testing.T) {
	repo := newRepoStub()
	o := newTestOrchestrator(repo, &colorStub{}, &semanticStub{}, &catalogStub{err: errors.New("db down")})

	res, err := o.Handle(context.Background(), Query{ConversationID: "c1", Text: "1984 giá bao nhiêu?"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if res.Reply != constant.PriceMissApology {
		t.Errorf("reply = %q, want price-miss apology", res.Reply)
	}
}
