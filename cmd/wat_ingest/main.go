package main

import (
	"encoding/json"
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"github.com/hscells/wat"
	"github.com/hscells/wat/corpus"
	"io"
	"log"
	"os"
)

var (
	name    = "wat_ingest"
	version = "17.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Input  string `help:"JSON lines of documents to ingest (default: standard input)" arg:"positional"`
	Config string `help:"path to configuration file" arg:"-c,--config" default:"wat.properties"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s

Reads documents, one JSON object per line:
{"url": "http://...", "body": "<html>...", "tags": ["race"]}`, name, author, version)
}

type document struct {
	URL  string   `json:"url"`
	Body string   `json:"body"`
	Tags []string `json:"tags"`
}

func main() {
	var args args
	p := arg.MustParse(&args)

	c, err := wat.LoadConfig(args.Config)
	if err != nil {
		p.Fail(err.Error())
	}

	var r io.Reader = os.Stdin
	if len(args.Input) > 0 {
		f, err := os.Open(args.Input)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		r = f
	}

	var docs []document
	dec := json.NewDecoder(r)
	for {
		var d document
		if err := dec.Decode(&d); err == io.EOF {
			break
		} else if err != nil {
			log.Fatalln(err)
		}
		if len(d.URL) == 0 {
			log.Fatalln("document without a url")
		}
		docs = append(docs, d)
	}

	tags := corpus.NewMapTagStore(nil)
	if _, err := os.Stat(c.Tags); err == nil {
		tags, err = corpus.LoadTagFile(c.Tags)
		if err != nil {
			log.Fatalln(err)
		}
	}
	store := corpus.NewDocumentStore(c.Documents)

	bar := pb.New(len(docs)).SetWriter(os.Stderr)
	bar.Start()
	for _, d := range docs {
		id := corpus.CanonURL(d.URL)
		if err := store.Put(id, []byte(d.Body)); err != nil {
			log.Fatalln(err)
		}
		tags.Add(id, d.Tags...)
		bar.Increment()
	}
	bar.Finish()

	if err := tags.WriteFile(c.Tags); err != nil {
		log.Fatalln(err)
	}
	log.Printf("ingested %d documents, %d tagged documents in %s\n", len(docs), tags.Len(), c.Tags)
}
