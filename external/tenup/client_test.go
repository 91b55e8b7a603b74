package tenup

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	t.Run("bare array", func(t *testing.T) {
		t.Parallel()

		records, err := decodeRecords([]byte(`[{"name": "Open de Lyon"}, {"name": "Padel Tour"}]`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(records) != 2 || records[0]["name"] != "Open de Lyon" {
			t.Fatalf("records: %+v", records)
		}
	})

	t.Run("items envelope", func(t *testing.T) {
		t.Parallel()

		records, err := decodeRecords([]byte(`{"items": [{"name": "Open de Lyon"}]}`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("records: %+v", records)
		}
	})

	t.Run("tournaments envelope", func(t *testing.T) {
		t.Parallel()

		records, err := decodeRecords([]byte(`{"tournaments": [{"name": "Open de Lyon"}]}`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("records: %+v", records)
		}
	})

	t.Run("empty envelope", func(t *testing.T) {
		t.Parallel()

		if _, err := decodeRecords([]byte(`{"other": 1}`)); err == nil {
			t.Fatal("expected error for payload without records")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		if _, err := decodeRecords([]byte(`not json`)); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"name": "Open de Lyon", "detail_url": "https://tenup.fft.fr/tournoi/82300541"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{}, nil)
	records, err := client.Fetch(t.Context(), server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Open de Lyon" {
		t.Fatalf("records: %+v", records)
	}
}

func TestClient_Fetch_RejectsNonHTTPURL(t *testing.T) {
	client := NewClient(ClientConfig{}, nil)
	if _, err := client.Fetch(t.Context(), "ftp://dumps/latest.json"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestClient_Fetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Retries: 1}, nil)
	if _, err := client.Fetch(t.Context(), server.URL); err == nil {
		t.Fatal("expected error for 502 response")
	}
}


