package partdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const createFormPage = `<html><body>
<form method="post" name="part_base">
<input type="hidden" name="part_base[_token]" value="form-token">
<input type="text" name="part_base[name]" value="SS8050">
<input type="checkbox" name="part_base[needs_review]">
<textarea name="part_base[description]">NPN transistor</textarea>
<select name="part_base[category]" id="part_base_category">
<option value="">-- none --</option>
<option value="4">Transistors -&gt; BJT</option>
</select>
<div id="part_base_category_help">Info provider: <b>Provider: Transistors -&gt; BJT</b></div>
<button type="submit" id="part_base_save" name="part_base[save]">Save</button>
</form>
</body></html>`

func TestCategoryHelpText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, createFormPage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	help, err := client.CategoryHelpText(context.Background(), "C2962094")
	require.NoError(t, err)
	require.Equal(t, "Info provider: Provider: Transistors -> BJT", help)
}

func TestCategoryHelpTextAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C1/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><form><button id="part_base_save"></button></form></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	help, err := client.CategoryHelpText(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, "", help)
}

func TestCreatePart(t *testing.T) {
	var submitted map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, createFormPage)
	})
	mux.HandleFunc("POST /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		submitted = map[string]string{}
		for k := range r.PostForm {
			submitted[k] = r.PostForm.Get(k)
		}
		http.Redirect(w, r, "/en/part/99", http.StatusFound)
	})
	mux.HandleFunc("GET /en/part/99", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>created</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.CreatePart(context.Background(), CreatePartOptions{
		Identifier: "C2962094",
		Quantity:   25,
		Category:   "Transistors -> BJT",
	})
	require.NoError(t, err)

	require.Equal(t, "form-token", submitted["part_base[_token]"])
	require.Equal(t, "SS8050", submitted["part_base[name]"])
	require.Equal(t, "NPN transistor", submitted["part_base[description]"])
	require.Equal(t, "25", submitted["part_base[partLots][0][amount][value]"])
	// existing category resolved to its option value, not raw text
	require.Equal(t, "4", submitted["part_base[category]"])
	// unchecked checkboxes are not submitted
	_, hasCheckbox := submitted["part_base[needs_review]"]
	require.False(t, hasCheckbox)
}

func TestCreatePartNewCategorySubmittedAsText(t *testing.T) {
	var submitted string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, createFormPage)
	})
	mux.HandleFunc("POST /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		submitted = r.PostForm.Get("part_base[category]")
		http.Redirect(w, r, "/en/part/99", http.StatusFound)
	})
	mux.HandleFunc("GET /en/part/99", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>created</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.CreatePart(context.Background(), CreatePartOptions{
		Identifier: "C2962094",
		Quantity:   1,
		Category:   "Circuit Protection -> Varistors, MOVs",
	})
	require.NoError(t, err)
	require.Equal(t, "Circuit Protection -> Varistors, MOVs", submitted)
}

func TestCreatePartRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, createFormPage)
	})
	mux.HandleFunc("POST /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="alert-danger">This value is not valid.</div></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.CreatePart(context.Background(), CreatePartOptions{
		Identifier: "C2962094",
		Quantity:   1,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "This value is not valid.")
}

func TestCreatePartSessionExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/part/from_info_provider/lcsc/C2962094/create", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/en/login", http.StatusFound)
	})
	mux.HandleFunc("GET /en/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginPage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.CreatePart(context.Background(), CreatePartOptions{
		Identifier: "C2962094",
		Quantity:   1,
	})
	require.ErrorIs(t, err, ErrSessionExpired)
}
