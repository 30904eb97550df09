package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"brandchat/internal/model"
	"brandchat/internal/repository"
)

// fakeCompleter returns a canned reply (or error) and records the transcript
// it was called with.
type fakeCompleter struct {
	reply       string
	err         error
	lastHistory []model.Message
}

func (f *fakeCompleter) Complete(_ context.Context, history []model.Message) (string, error) {
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChatService_Chat(t *testing.T) {
	Convey("Chat runs one request/response turn", t, func() {
		store := repository.NewMemoryStore()
		completer := &fakeCompleter{reply: "We carry sizes XS through XXL."}
		svc := NewChatService(completer, store)
		ctx := context.Background()

		Convey("a new conversation gets an id and a full transcript", func() {
			result, err := svc.Chat(ctx, "", "What sizes do you carry?")
			So(err, ShouldBeNil)
			So(result.Reply, ShouldEqual, "We carry sizes XS through XXL.")
			So(result.ConversationID, ShouldNotBeEmpty)

			history, err := store.History(ctx, result.ConversationID)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 2)
			So(history[0].Role, ShouldEqual, model.RoleUser)
			So(history[0].Content, ShouldEqual, "What sizes do you carry?")
			So(history[1].Role, ShouldEqual, model.RoleAssistant)
			So(history[1].Content, ShouldEqual, "We carry sizes XS through XXL.")
		})

		Convey("the upstream call sees the user message but no system role", func() {
			_, err := svc.Chat(ctx, "", "Do you ship internationally?")
			So(err, ShouldBeNil)
			So(completer.lastHistory, ShouldHaveLength, 1)
			So(completer.lastHistory[0].Role, ShouldEqual, model.RoleUser)
		})

		Convey("sequential turns on one id keep call order", func() {
			first, err := svc.Chat(ctx, "", "first")
			So(err, ShouldBeNil)

			completer.reply = "second answer"
			second, err := svc.Chat(ctx, first.ConversationID, "second")
			So(err, ShouldBeNil)
			So(second.ConversationID, ShouldEqual, first.ConversationID)

			history, err := store.History(ctx, first.ConversationID)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 4)
			So(history[0].Content, ShouldEqual, "first")
			So(history[2].Content, ShouldEqual, "second")

			// second turn was completed against the prior transcript
			So(completer.lastHistory, ShouldHaveLength, 3)
		})

		Convey("a client-minted id is honored", func() {
			result, err := svc.Chat(ctx, "my-own-id", "hello")
			So(err, ShouldBeNil)
			So(result.ConversationID, ShouldEqual, "my-own-id")
		})
	})
}

func TestChatService_UpstreamFailure(t *testing.T) {
	Convey("upstream failures surface as ErrUpstream", t, func() {
		store := repository.NewMemoryStore()
		completer := &fakeCompleter{err: errors.New("provider timeout")}
		svc := NewChatService(completer, store)
		ctx := context.Background()

		convID, _ := store.CreateOrGet(ctx, "")
		_, err := svc.Chat(ctx, convID, "anyone there?")
		So(errors.Is(err, ErrUpstream), ShouldBeTrue)

		Convey("the user message stays appended", func() {
			history, err := store.History(ctx, convID)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 1)
			So(history[0].Role, ShouldEqual, model.RoleUser)
		})
	})
}

func TestChatService_DeleteConversation(t *testing.T) {
	Convey("DeleteConversation removes the transcript", t, func() {
		store := repository.NewMemoryStore()
		svc := NewChatService(&fakeCompleter{reply: "ok"}, store)
		ctx := context.Background()

		result, err := svc.Chat(ctx, "", "hello")
		So(err, ShouldBeNil)

		So(svc.DeleteConversation(ctx, result.ConversationID), ShouldBeNil)

		_, err = store.History(ctx, result.ConversationID)
		So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

		Convey("deleting an unknown id succeeds", func() {
			So(svc.DeleteConversation(ctx, "never-existed"), ShouldBeNil)
		})
	})
}
