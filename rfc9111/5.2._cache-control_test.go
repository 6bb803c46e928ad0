package rfc9111

import (
	"net/http"
	"testing"
)

func header(values ...string) http.Header {
	h := http.Header{}
	for _, v := range values {
		h.Add("Cache-Control", v)
	}
	return h
}

func TestMaxAge(t *testing.T) {
	cc := ParseCacheControl(header("max-age=60"))
	val, ok := cc.Get("max-age")
	if !ok {
		t.Fatal("Could not get directive")
	}
	if val != "60" {
		t.Fatalf("Value is %s", val)
	}
}

func TestReal(t *testing.T) {
	cc := ParseCacheControl(header("public, max-age=0, s-maxage=600"))
	if val, ok := cc.Get("public"); !ok || val != "" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
	if val, ok := cc.Get("max-age"); !ok || val != "0" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
	if val, ok := cc.Get("s-maxage"); !ok || val != "600" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
}

func TestCaseAndQuotes(t *testing.T) {
	cc := ParseCacheControl(header(`No-Cache="Set-Cookie"`, "PUBLIC"))
	if val, ok := cc.Get("no-cache"); !ok || val != "Set-Cookie" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
	if !cc.HasDirective("Public") {
		t.Fatal("public directive missing")
	}
}

func TestRevalidateString(t *testing.T) {
	if s := Revalidate.String(); s != "no-cache, public" {
		t.Fatalf("Cache-Control is '%s'", s)
	}
	if s := (ResponseDirectives{Public: true}).String(); s != "public" {
		t.Fatalf("Cache-Control is '%s'", s)
	}
}

func TestRevalidateParsesBack(t *testing.T) {
	cc := ParseCacheControl(header(Revalidate.String()))
	if !cc.HasDirective("no-cache") || !cc.HasDirective("public") {
		t.Fatalf("Directives lost: %+v", cc)
	}
	if cc.HasDirective("max-age") {
		t.Fatal("Unexpected max-age")
	}
}
