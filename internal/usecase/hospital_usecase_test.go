package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/testutil"
)

func TestCheckConnectivity(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	dir, err := hospital.NewDirectory(map[string]string{"hospa": up.URL, "hospb": down.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc := NewHospitalUsecase(testutil.Logger(), hospital.NewClient(dir, hospital.Options{}, testutil.Logger()))

	status := uc.CheckConnectivity(context.Background())
	if status.Total != 2 || status.Accessible != 1 {
		t.Fatalf("expected 1 of 2 accessible, got %+v", status)
	}
	if status.Hospitals[0].HospitalID != "hospa" || !status.Hospitals[0].Accessible {
		t.Errorf("unexpected hospa result %+v", status.Hospitals[0])
	}
	if status.Hospitals[1].HospitalID != "hospb" || status.Hospitals[1].Status != http.StatusInternalServerError {
		t.Errorf("unexpected hospb result %+v", status.Hospitals[1])
	}

	if list := uc.ListHospitals(); len(list.Hospitals) != 2 {
		t.Errorf("expected two hospitals, got %v", list.Hospitals)
	}
}
