package kernel

import "testing"

func TestPublishOrderAndMatching(t *testing.T) {
	k := New(newFakeHAL())

	var got []string
	k.RegisterHandler("alpha", func(name, text string) {
		got = append(got, "a1:"+text)
	})
	k.RegisterHandler("beta", func(name, text string) {
		got = append(got, "b:"+text)
	})
	k.RegisterHandler("alpha", func(name, text string) {
		got = append(got, "a2:"+text)
	})

	k.Publish("alpha", "x")
	k.Publish("nobody-home", "ignored")

	if len(got) != 2 || got[0] != "a1:x" || got[1] != "a2:x" {
		t.Fatalf("got %v", got)
	}
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	k := New(newFakeHAL())

	ran := false
	k.RegisterHandler("m", func(name, text string) {
		panic("handler bug")
	})
	k.RegisterHandler("m", func(name, text string) {
		ran = true
	})

	k.Publish("m", "payload")
	if !ran {
		t.Fatal("second handler did not run")
	}
}

func TestRemoveHandler(t *testing.T) {
	k := New(newFakeHAL())

	calls := 0
	h := k.RegisterHandler("m", func(name, text string) {
		calls++
	})
	k.Publish("m", "1")
	k.RemoveHandler(h)
	k.Publish("m", "2")

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if len(k.MessageHandlers()["m"]) != 0 {
		t.Fatal("handler still registered")
	}
}

func TestPostUsesSeverityNames(t *testing.T) {
	k := New(newFakeHAL())

	var texts []string
	k.RegisterHandler(SeverityWarning.String(), func(name, text string) {
		if name != "WARNING" {
			t.Fatalf("name = %q", name)
		}
		texts = append(texts, text)
	})

	k.Post(SeverityWarning, "low battery")
	k.Post(SeverityDebug, "not for us")

	if len(texts) != 1 || texts[0] != "low battery" {
		t.Fatalf("texts = %v", texts)
	}
}
