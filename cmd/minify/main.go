package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/jessevdk/go-flags"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

type Options struct {
	Dir string `short:"d" long:"dir" description:"Assets directory" default:"assets"`
}

type PageData struct {
	CSS string
	JS  string
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)

	cssMin, err := minifyFile(m, "text/css", filepath.Join(opts.Dir, "style.css"))
	if err != nil {
		log.Fatal("error minify CSS:", err)
	}

	jsMin, err := minifyFile(m, "text/javascript", filepath.Join(opts.Dir, "script.js"))
	if err != nil {
		log.Fatal("error minify JS:", err)
	}

	tmpl, err := template.ParseFiles(filepath.Join(opts.Dir, "index.html.tpl"))
	if err != nil {
		log.Fatal("error read template:", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PageData{CSS: cssMin, JS: jsMin}); err != nil {
		log.Fatal("error parse template:", err)
	}

	finalHTML, err := m.String("text/html", buf.String())
	if err != nil {
		log.Fatal("error minify HTML:", err)
	}

	if err := os.WriteFile(filepath.Join(opts.Dir, "index.html"), []byte(finalHTML), 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Println("minify done")
}

func minifyFile(m *minify.M, mediatype, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return m.String(mediatype, string(raw))
}
