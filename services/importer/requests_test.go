package importer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseRequests(t *testing.T) {
	input := strings.Join([]string{
		"C12345,10",
		"12345,10",
		"C12345,abc",
		"C12345",
		"C2962094,25",
		" C777 , 3 ",
		"C1,2,3",
	}, "\n")

	requests, err := ParseRequests(strings.NewReader(input))
	require.NoError(t, err)

	expected := []PartRequest{
		{Identifier: "C12345", Quantity: 10},
		{Identifier: "C2962094", Quantity: 25},
		{Identifier: "C777", Quantity: 3},
	}
	if diff := cmp.Diff(expected, requests); diff != "" {
		t.Fatalf("unexpected requests (-want +got):\n%s", diff)
	}
}

func TestParseRequestsAllInvalid(t *testing.T) {
	input := "notapart,10\nC5,x\n"
	_, err := ParseRequests(strings.NewReader(input))
	require.ErrorIs(t, err, ErrNoRequests)
}

func TestParseRequestsEmptyInput(t *testing.T) {
	_, err := ParseRequests(strings.NewReader(""))
	require.ErrorIs(t, err, ErrNoRequests)
}
