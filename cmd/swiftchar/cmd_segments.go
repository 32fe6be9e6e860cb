package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/swiftchar"
	"github.com/oleg578/swiftchar/internal/config"
	"github.com/oleg578/swiftchar/internal/segstore"
)

// storeBatchSize bounds the segments held in memory between store writes.
const storeBatchSize = 256

func newSegmentsCmd(g *globals) *cobra.Command {
	var delimiter string
	var storePath string
	var list bool
	var at int
	var limit int

	cmd := &cobra.Command{
		Use:   "segments <file>",
		Short: "Split a file into delimiter-terminated segments",
		Long: "Split a file into delimiter-terminated segments.\n\n" +
			"With --list the argument is a bolt database written by --store, and\n" +
			"the stored segments are printed instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				return listSegments(out, args[0], at, limit)
			}

			opts, err := g.cfg.Options()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delimiter") {
				g.cfg.Delimiter = delimiter
			}
			delim, err := g.cfg.SegmentDelimiter()
			if err != nil {
				return err
			}

			var sink *segmentSink
			if storePath != "" {
				if sink, err = openSegmentSink(storePath); err != nil {
					return err
				}
				defer sink.close()
			}

			var writeErr error
			err = swiftchar.ReadFileSegments(args[0], opts, delim, func(text string, size, index int) bool {
				if writeErr = printSegment(out, swiftchar.Segment{Text: text, Size: size, Index: index}); writeErr != nil {
					return false
				}
				if sink != nil {
					if writeErr = sink.add(swiftchar.Segment{Text: text, Size: size, Index: index}); writeErr != nil {
						return false
					}
				}
				return limit <= 0 || index+1 < limit
			})
			if err != nil {
				return fmt.Errorf("read segments: %w", err)
			}
			if writeErr != nil {
				return writeErr
			}
			if sink == nil {
				return nil
			}
			return sink.flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&delimiter, "delimiter", "d", config.Default().Delimiter, `segment terminator, Go escapes allowed (e.g. '\r\n')`)
	flags.StringVar(&storePath, "store", "", "bolt database that receives the segments, replacing its contents")
	flags.BoolVar(&list, "list", false, "print the segments stored in the bolt database given as argument")
	flags.IntVar(&at, "index", -1, "with --list, print only the segment with this index")
	flags.IntVarP(&limit, "limit", "n", 0, "stop after N segments (0 reads everything)")
	return cmd
}

func printSegment(w io.Writer, seg swiftchar.Segment) error {
	_, err := fmt.Fprintf(w, "%d\t%d\t%q\n", seg.Index, seg.Size, seg.Text)
	return err
}

// segmentSink writes segments to a store in batches of storeBatchSize.
type segmentSink struct {
	store *segstore.Store
	path  string
	batch []swiftchar.Segment
}

func openSegmentSink(path string) (*segmentSink, error) {
	store, err := segstore.Open(path)
	if err != nil {
		return nil, err
	}
	if err := store.Reset(); err != nil {
		store.Close()
		return nil, fmt.Errorf("reset store: %w", err)
	}
	return &segmentSink{store: store, path: path, batch: make([]swiftchar.Segment, 0, storeBatchSize)}, nil
}

func (s *segmentSink) add(seg swiftchar.Segment) error {
	s.batch = append(s.batch, seg)
	if len(s.batch) < storeBatchSize {
		return nil
	}
	return s.write()
}

func (s *segmentSink) write() error {
	if len(s.batch) == 0 {
		return nil
	}
	if err := s.store.PutAll(s.batch); err != nil {
		return fmt.Errorf("store segments: %w", err)
	}
	s.batch = s.batch[:0]
	return nil
}

func (s *segmentSink) flush() error {
	if err := s.write(); err != nil {
		return err
	}
	n, err := s.store.Count()
	if err != nil {
		return err
	}
	log.Infof("stored %d segments in %s", n, s.path)
	return nil
}

func (s *segmentSink) close() {
	if err := s.store.Close(); err != nil {
		log.Errorf("close %s: %s", s.path, err)
	}
}

func listSegments(w io.Writer, path string, at, limit int) error {
	store, err := segstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if at >= 0 {
		seg, err := store.Get(at)
		if err != nil {
			return err
		}
		return printSegment(w, seg)
	}

	var n int
	var writeErr error
	err = store.ForEach(func(seg swiftchar.Segment) bool {
		if writeErr = printSegment(w, seg); writeErr != nil {
			return false
		}
		n++
		return limit <= 0 || n < limit
	})
	if err != nil {
		return err
	}
	return writeErr
}
