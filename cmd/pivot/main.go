package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/datatally/pivot/pivot"
	"github.com/datatally/pivot/pivot/csvio"
	"github.com/datatally/pivot/pivot/events"
)

// filterFlag collects repeatable FIELD=V1,V2 flag values into a map.
type filterFlag struct {
	m map[string][]string
}

func (f *filterFlag) String() string {
	if f == nil || len(f.m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.m))
	for field, vals := range f.m {
		parts = append(parts, field+"="+strings.Join(vals, ","))
	}
	return strings.Join(parts, " ")
}

func (f *filterFlag) Set(s string) error {
	field, vals, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected FIELD=V1,V2 syntax, got %q", s)
	}
	if f.m == nil {
		f.m = make(map[string][]string)
	}
	f.m[field] = append(f.m[field], strings.Split(vals, ",")...)
	return nil
}

// toNumeric converts a parsed text filter map to a numeric one.
func toNumeric(m map[string][]string) (map[string][]float64, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string][]float64, len(m))
	for field, vals := range m {
		for _, v := range vals {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not numeric", field, v)
			}
			out[field] = append(out[field], n)
		}
	}
	return out, nil
}

func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func main() {
	var inputPath string
	var outputPath string
	var groupSpec string
	var measureSpec string
	var maxRows int64
	var inMemory bool
	var printTable bool
	var verbose bool
	var include, exclude, nInclude, nExclude filterFlag

	flag.StringVar(&inputPath, "input", "", "input CSV path")
	flag.StringVar(&outputPath, "output", "", "output CSV path (omit to skip writing)")
	flag.StringVar(&groupSpec, "group", "", "comma-separated grouping fields")
	flag.StringVar(&measureSpec, "measure", "", "comma-separated measured fields")
	flag.Int64Var(&maxRows, "max-rows", -1, "stop after examining this many rows (-1 = all)")
	flag.BoolVar(&inMemory, "in-memory", false, "load the whole file before aggregating")
	flag.BoolVar(&printTable, "print", false, "print the pivot table to stdout")
	flag.BoolVar(&verbose, "verbose", false, "verbose mode (show timing events)")
	flag.Var(&include, "include", "text include filter, FIELD=V1,V2 (repeatable)")
	flag.Var(&exclude, "exclude", "text exclude filter, FIELD=V1,V2 (repeatable)")
	flag.Var(&nInclude, "include-num", "numeric include filter, FIELD=V1,V2 (repeatable)")
	flag.Var(&nExclude, "exclude-num", "numeric exclude filter, FIELD=V1,V2 (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Computes grouped sum/count/mean statistics over a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -input flights.csv -group CARRIER,ORIGIN -measure PASSENGERS -output pivot.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input flights.csv -group CARRIER -measure PASSENGERS,SEATS -include CARRIER=UA,AA -print\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input flights.csv -group CARRIER -measure SEATS -max-rows 100000 -verbose\n", os.Args[0])
	}
	flag.Parse()

	if inputPath == "" || groupSpec == "" || measureSpec == "" {
		flag.Usage()
		os.Exit(2)
	}

	groupFields := splitFields(groupSpec)
	measuredFields := splitFields(measureSpec)

	numInclude, err := toNumeric(nInclude.m)
	if err != nil {
		log.Fatalf("bad -include-num value: %v", err)
	}
	numExclude, err := toNumeric(nExclude.m)
	if err != nil {
		log.Fatalf("bad -exclude-num value: %v", err)
	}

	var collector *events.Collector
	if verbose {
		collector = events.NewCollector(events.ConsoleHandler())
	}

	opts := pivot.Options{
		GroupFields:    groupFields,
		MeasuredFields: measuredFields,
		MaxRows:        maxRows,
		TextFilter: pivot.TextFilter{
			Include: include.m,
			Exclude: exclude.m,
		},
		NumberFilter: pivot.NumberFilter{
			Include: numInclude,
			Exclude: numExclude,
		},
		Collector: collector,
	}

	// Numeric-filtered fields need numeric parsing too, not just the
	// measured ones.
	numericFields := append([]string(nil), measuredFields...)
	for field := range numInclude {
		numericFields = append(numericFields, field)
	}
	for field := range numExclude {
		numericFields = append(numericFields, field)
	}

	start := time.Now()

	var store *pivot.Store
	var scanned int64
	if inMemory {
		rows, err := csvio.Load(inputPath, numericFields)
		if err != nil {
			log.Fatalf("loading %s: %v", inputPath, err)
		}
		scanned = int64(len(rows))
		store, err = pivot.Pivot(rows, opts)
		if err != nil {
			log.Fatalf("aggregating: %v", err)
		}
	} else {
		source, err := csvio.Open(inputPath, numericFields)
		if err != nil {
			log.Fatalf("opening %s: %v", inputPath, err)
		}
		defer source.Close()
		scanned, store, err = pivot.Scan(source, opts)
		if err != nil {
			log.Fatalf("aggregating: %v", err)
		}
	}

	if outputPath != "" {
		emitStart := time.Now()
		w, err := csvio.Create(outputPath)
		if err != nil {
			log.Fatalf("creating %s: %v", outputPath, err)
		}
		if err := pivot.EmitTable(store, pivot.KeyLabel(groupFields), w); err != nil {
			w.Close()
			log.Fatalf("writing %s: %v", outputPath, err)
		}
		if err := w.Close(); err != nil {
			log.Fatalf("writing %s: %v", outputPath, err)
		}
		collector.AddTiming(events.EmitCompleted, emitStart, map[string]interface{}{
			"groups": store.Len(),
			"path":   outputPath,
		})
	}

	if printTable {
		fmt.Print(pivot.NewFormatter().FormatStore(store, pivot.KeyLabel(groupFields)))
	}

	fmt.Printf("Processed %d rows into %d groups in %s.\n",
		scanned, store.Len(), time.Since(start).Round(time.Millisecond))
}
