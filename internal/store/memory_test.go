package store_test

import (
	"testing"

	"github.com/twiced-technology-gmbh/studytrack/internal/store"
	"github.com/twiced-technology-gmbh/studytrack/internal/store/compliance"
)

func TestMemory_Compliance(t *testing.T) {
	compliance.Run(t, func() (store.KV, func()) {
		return store.NewMemory(), func() {}
	})
}

func TestMemory_ZeroValue(t *testing.T) {
	compliance.Run(t, func() (store.KV, func()) {
		return &store.Memory{}, func() {}
	})
}
