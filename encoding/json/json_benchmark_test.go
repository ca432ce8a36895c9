package json

import "testing"

func BenchmarkUnmarshal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Unmarshal([]byte(`{"account":{"id":"536a541fa9393bb3c7000023","balance":{"amount":"50.00000000","currency":"BTC"}}}`), &map[string]interface{}{})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()
	if !Valid([]byte(`{"success":true}`)) {
		t.Fatal("expected valid JSON")
	}
	if Valid([]byte(`{"success":`)) {
		t.Fatal("expected invalid JSON")
	}
}
