// Package sqpack provides read-only random access to SqPack game asset
// archives.
//
// An archive tree is split into packs, one per (category, repository)
// pair. Each pack is an index pair ("<pack>.<platform>.index" and
// ".index2") mapping path hashes to locations in block-compressed data
// files (".dat0" to ".dat7"). A [Catalog] resolves virtual asset paths
// such as "exd/item.exh" against those packs and returns the reassembled
// bytes.
//
// Tables are stored as a schema asset ("<table>.exh") plus one or more
// data pages ("<table>_<start>_<lang>.exd"). [Catalog.Rows] decodes every
// page of a table into typed [Row] values.
//
// # Quick Start
//
//	cat, err := sqpack.New("/games/ffxiv/sqpack")
//	if err != nil {
//	    return err
//	}
//	defer cat.Close()
//
//	asset, err := cat.Asset("exd/root.exl")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(asset.Len())
//
//	rows, err := cat.Rows("exd/item")
//
// # Caching
//
// Reassembling an asset inflates every one of its blocks. Use [WithCache]
// with a [cache/disk] cache to keep decoded assets across calls and
// processes:
//
//	dc, err := disk.New("/var/cache/sqpack", disk.WithMaxBytes(1<<30))
//	cat, err := sqpack.New(root, sqpack.WithCache(dc))
package sqpack
