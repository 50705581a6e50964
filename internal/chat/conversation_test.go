package chat

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partselect/partchat/internal/models"
)

func TestConversationAppend(t *testing.T) {
	conv := NewConversation(nil)

	id1 := conv.Append(models.NewUserMessage("first"))
	id2 := conv.Append(models.NewUserMessage("second"))

	require.NotEmpty(t, id1)
	require.NotEqual(t, id1, id2)

	snap := conv.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, "first", snap[0].Content)
	require.Equal(t, "second", snap[1].Content)
	require.Equal(t, id1, snap[0].ID)
	require.False(t, snap[0].CreatedAt.IsZero())
}

func TestConversationAppend_KeepsGivenID(t *testing.T) {
	conv := NewConversation(nil)
	id := conv.Append(models.Message{ID: "fixed", Role: models.RoleUser, Content: "x"})
	require.Equal(t, "fixed", id)
}

func TestConversationReplace_PreservesPosition(t *testing.T) {
	conv := NewConversation(nil)
	conv.Append(models.NewUserMessage("hello"))
	placeholder := conv.Append(models.NewThinkingMessage())
	conv.Append(models.NewUserMessage("after"))

	ok := conv.Replace(placeholder, models.NewAssistantMessage(&models.Reply{Content: "hi"}))
	require.True(t, ok)

	snap := conv.Snapshot()
	require.Len(t, snap, 3)
	require.Equal(t, models.RoleAssistant, snap[1].Role)
	require.Equal(t, "hi", snap[1].Content)
	require.Equal(t, placeholder, snap[1].ID, "replacement keeps the placeholder id")
	require.Equal(t, "after", snap[2].Content)
}

func TestConversationReplace_UnknownIDIsNoop(t *testing.T) {
	conv := NewConversation(nil)
	conv.Append(models.NewUserMessage("hello"))

	notified := 0
	conv.Subscribe(func([]models.Message) { notified++ })

	ok := conv.Replace("missing", models.NewErrorMessage())
	require.False(t, ok)
	require.Equal(t, 0, notified)
	require.Len(t, conv.Snapshot(), 1)
	require.Equal(t, models.RoleUser, conv.Snapshot()[0].Role)
}

func TestConversationSnapshot_IsCopy(t *testing.T) {
	conv := NewConversation(nil)
	conv.Append(models.NewUserMessage("original"))
	replyID := conv.Append(models.NewAssistantMessage(&models.Reply{
		Content: "answer",
		Context: json.RawMessage(`{"a":1}`),
	}))

	snap := conv.Snapshot()
	snap[0].Content = "mutated"
	snap[1].Context[1] = 'X'
	_ = append(snap, models.NewUserMessage("extra"))

	found, _, ok := conv.Find(replyID)
	require.True(t, ok)
	found.Context[1] = 'Y'

	last, ok := conv.LastReply()
	require.True(t, ok)
	last.Context[1] = 'Z'

	again := conv.Snapshot()
	require.Len(t, again, 2)
	require.Equal(t, "original", again[0].Content)
	require.JSONEq(t, `{"a":1}`, string(again[1].Context))
}

func TestConversationAppend_CopiesContext(t *testing.T) {
	conv := NewConversation(nil)
	ctx := json.RawMessage(`{"a":1}`)
	msg := models.NewAssistantMessage(&models.Reply{Content: "answer"})
	msg.Context = ctx
	id := conv.Append(msg)

	ctx[1] = 'X'

	stored, _, ok := conv.Find(id)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(stored.Context))
}

func TestConversationSubscribe(t *testing.T) {
	conv := NewConversation(nil)

	var seen [][]models.Message
	unsubscribe := conv.Subscribe(func(s []models.Message) { seen = append(seen, s) })

	id := conv.Append(models.NewThinkingMessage())
	conv.Replace(id, models.NewErrorMessage())

	require.Len(t, seen, 2)
	require.Len(t, seen[0], 1)
	require.Equal(t, models.RoleThinking, seen[0][0].Role)
	require.Equal(t, models.RoleError, seen[1][0].Role)

	unsubscribe()
	unsubscribe()
	conv.Append(models.NewUserMessage("quiet"))
	require.Len(t, seen, 2)
}

func TestConversationObserverMayReadStore(t *testing.T) {
	conv := NewConversation(nil)

	var lengths []int
	conv.Subscribe(func([]models.Message) { lengths = append(lengths, conv.Len()) })

	conv.Append(models.NewUserMessage("a"))
	conv.Append(models.NewUserMessage("b"))
	require.Equal(t, []int{1, 2}, lengths)
}

func TestConversationHelpers(t *testing.T) {
	conv := NewConversation(nil)
	_, ok := conv.LastReply()
	require.False(t, ok)

	conv.Append(models.NewUserMessage("q"))
	conv.Append(models.NewAssistantMessage(&models.Reply{Content: "a1"}))
	id := conv.Append(models.NewThinkingMessage())
	require.Equal(t, 1, conv.ThinkingCount())

	reply, ok := conv.LastReply()
	require.True(t, ok)
	require.Equal(t, "a1", reply.Content)

	msg, idx, ok := conv.Find(id)
	require.True(t, ok)
	require.Equal(t, 2, idx)
	require.True(t, msg.IsPending())

	_, idx, ok = conv.Find("nope")
	require.False(t, ok)
	require.Equal(t, -1, idx)
}

func TestConversationConcurrentReaders(t *testing.T) {
	conv := NewConversation(nil)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = conv.Snapshot()
				_ = conv.ThinkingCount()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		conv.Append(models.NewUserMessage("m"))
	}
	wg.Wait()
	require.Equal(t, 100, conv.Len())
}
