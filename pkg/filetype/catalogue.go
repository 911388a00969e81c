package filetype

// CatalogueEntry is one {extension, media-type} pair this package can emit.
// The catalogue is closed: every Result returned by Detect corresponds to
// exactly one entry here, and every entry has at least one detector arm that
// can produce it.
type CatalogueEntry struct {
	Ext  string
	MIME string
}

// catalogue lists every {ext, mime} pair this package can produce, sorted
// lexicographically by extension (ties broken by mime) to match how the
// supported-format table is documented.
var catalogue = []CatalogueEntry{
	{"3g2", "video/3gpp2"},
	{"3gp", "video/3gpp"},
	{"3mf", "model/3mf"},
	{"7z", "application/x-7z-compressed"},
	{"Z", "application/x-compress"},
	{"aac", "audio/aac"},
	{"ac3", "audio/vnd.dolby.dd-raw"},
	{"ace", "application/x-ace-compressed"},
	{"ai", "application/postscript"},
	{"aif", "audio/aiff"},
	{"alias", "application/x.apple.alias"},
	{"amr", "audio/amr"},
	{"ape", "audio/ape"},
	{"apk", "application/vnd.android.package-archive"},
	{"apng", "image/apng"},
	{"ar", "application/x-unix-archive"},
	{"arj", "application/x-arj"},
	{"arrow", "application/x-apache-arrow"},
	{"arw", "image/x-sony-arw"},
	{"asar", "application/x-asar"},
	{"asf", "application/vnd.ms-asf"},
	{"asf", "audio/x-ms-asf"},
	{"asf", "video/x-ms-asf"},
	{"avi", "video/vnd.avi"},
	{"avif", "image/avif"},
	{"blend", "application/x-blender"},
	{"bmp", "image/bmp"},
	{"bpg", "image/bpg"},
	{"bz2", "application/x-bzip2"},
	{"cab", "application/vnd.ms-cab-compressed"},
	{"cfb", "application/x-cfb"},
	{"chm", "application/vnd.ms-htmlhelp"},
	{"class", "application/java-vm"},
	{"cpio", "application/x-cpio"},
	{"cr2", "image/x-canon-cr2"},
	{"cr3", "image/x-canon-cr3"},
	{"crx", "application/x-google-chrome-extension"},
	{"cur", "image/x-icon"},
	{"dcm", "application/dicom"},
	{"deb", "application/x-deb"},
	{"dmg", "application/x-apple-diskimage"},
	{"dng", "image/x-adobe-dng"},
	{"docm", "application/vnd.ms-word.document.macroEnabled.12"},
	{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	{"drc", "application/vnd.google.draco"},
	{"dsf", "audio/x-dsf"},
	{"dwg", "image/vnd.dwg"},
	{"elf", "application/x-elf"},
	{"eot", "application/vnd.ms-fontobject"},
	{"eps", "application/eps"},
	{"epub", "application/epub+zip"},
	{"exe", "application/x-msdownload"},
	{"f4a", "audio/mp4"},
	{"f4b", "audio/mp4"},
	{"f4p", "video/mp4"},
	{"f4v", "video/mp4"},
	{"fbx", "application/fbx"},
	{"flac", "audio/x-flac"},
	{"flif", "image/flif"},
	{"flv", "video/x-flv"},
	{"gif", "image/gif"},
	{"glb", "model/gltf-binary"},
	{"gz", "application/gzip"},
	{"heic", "image/heic"},
	{"heic", "image/heic-sequence"},
	{"heic", "image/heif"},
	{"heic", "image/heif-sequence"},
	{"icc", "application/vnd.iccprofile"},
	{"icns", "image/icns"},
	{"ico", "image/x-icon"},
	{"ics", "text/calendar"},
	{"indd", "application/x-indesign"},
	{"it", "audio/x-it"},
	{"jar", "application/java-archive"},
	{"jls", "image/jls"},
	{"jp2", "image/jp2"},
	{"jpg", "image/jpeg"},
	{"jpm", "image/jpm"},
	{"jpx", "image/jpx"},
	{"jxl", "image/jxl"},
	{"jxr", "image/vnd.ms-photo"},
	{"ktx", "image/ktx"},
	{"lnk", "application/x.ms.shortcut"},
	{"lz", "application/x-lzip"},
	{"lz4", "application/x-lz4"},
	{"lzh", "application/x-lzh-compressed"},
	{"m4a", "audio/x-m4a"},
	{"m4b", "audio/mp4"},
	{"m4p", "video/mp4"},
	{"m4v", "video/x-m4v"},
	{"macho", "application/x-mach-binary"},
	{"mid", "audio/midi"},
	{"mie", "application/x-mie"},
	{"mj2", "image/mj2"},
	{"mkv", "video/x-matroska"},
	{"mobi", "application/x-mobipocket-ebook"},
	{"mov", "video/quicktime"},
	{"mp1", "audio/mpeg"},
	{"mp2", "audio/mpeg"},
	{"mp3", "audio/mpeg"},
	{"mp4", "video/mp4"},
	{"mpc", "audio/x-musepack"},
	{"mpg", "video/MP1S"},
	{"mpg", "video/MP2P"},
	{"mpg", "video/mpeg"},
	{"mts", "video/mp2t"},
	{"mxf", "application/mxf"},
	{"nef", "image/x-nikon-nef"},
	{"nes", "application/x-nintendo-nes-rom"},
	{"odp", "application/vnd.oasis.opendocument.presentation"},
	{"ods", "application/vnd.oasis.opendocument.spreadsheet"},
	{"odt", "application/vnd.oasis.opendocument.text"},
	{"oga", "audio/ogg"},
	{"ogg", "audio/ogg"},
	{"ogm", "video/ogg"},
	{"ogv", "video/ogg"},
	{"ogx", "application/ogg"},
	{"opus", "audio/opus"},
	{"orf", "image/x-olympus-orf"},
	{"otf", "font/otf"},
	{"par2", "application/x-par2"},
	{"pcap", "application/vnd.tcpdump.pcap"},
	{"pdf", "application/pdf"},
	{"pgp", "application/pgp-encrypted"},
	{"png", "image/png"},
	{"pptm", "application/vnd.ms-powerpoint.presentation.macroEnabled.12"},
	{"pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	{"ps", "application/postscript"},
	{"psd", "image/vnd.adobe.photoshop"},
	{"pst", "application/vnd.ms-outlook"},
	{"qcp", "audio/qcelp"},
	{"raf", "image/x-fujifilm-raf"},
	{"rar", "application/x-rar-compressed"},
	{"reg", "text/plain"},
	{"regf", "application/x-ms-regf"},
	{"rm", "application/vnd.rn-realmedia"},
	{"rpm", "application/x-rpm"},
	{"rtf", "application/rtf"},
	{"rw2", "image/x-panasonic-rw2"},
	{"s3m", "audio/x-s3m"},
	{"shp", "application/x-esri-shape"},
	{"skp", "application/vnd.sketchup.skp"},
	{"spx", "audio/ogg"},
	{"sqlite", "application/x-sqlite3"},
	{"stl", "model/stl"},
	{"swf", "application/x-shockwave-flash"},
	{"tar", "application/x-tar"},
	{"tar.gz", "application/gzip"},
	{"tif", "image/tiff"},
	{"ttc", "font/collection"},
	{"ttf", "font/ttf"},
	{"vcf", "text/vcard"},
	{"voc", "audio/x-voc"},
	{"wasm", "application/wasm"},
	{"wav", "audio/vnd.wave"},
	{"webm", "video/webm"},
	{"webp", "image/webp"},
	{"webvtt", "text/vtt"},
	{"woff", "font/woff"},
	{"woff2", "font/woff2"},
	{"wv", "audio/wavpack"},
	{"xcf", "image/x-xcf"},
	{"xlsm", "application/vnd.ms-excel.sheet.macroEnabled.12"},
	{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	{"xm", "audio/x-xm"},
	{"xml", "application/xml"},
	{"xpi", "application/x-xpinstall"},
	{"xz", "application/x-xz"},
	{"zip", "application/zip"},
	{"zst", "application/zstd"},
}

var (
	supportedExtensions = buildExtensionSet()
	supportedMIMETypes  = buildMIMESet()
)

func buildExtensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(catalogue))
	for _, e := range catalogue {
		set[e.Ext] = struct{}{}
	}
	return set
}

func buildMIMESet() map[string]struct{} {
	set := make(map[string]struct{}, len(catalogue))
	for _, e := range catalogue {
		set[e.MIME] = struct{}{}
	}
	return set
}

// SupportedExtensions returns the closed set of extension strings this
// package can detect, in catalogue order.
func SupportedExtensions() []string {
	out := make([]string, 0, len(supportedExtensions))
	seen := make(map[string]struct{}, len(supportedExtensions))
	for _, e := range catalogue {
		if _, ok := seen[e.Ext]; ok {
			continue
		}
		seen[e.Ext] = struct{}{}
		out = append(out, e.Ext)
	}
	return out
}

// SupportedMIMETypes returns the closed set of media-type strings this
// package can detect, in catalogue order.
func SupportedMIMETypes() []string {
	out := make([]string, 0, len(supportedMIMETypes))
	seen := make(map[string]struct{}, len(supportedMIMETypes))
	for _, e := range catalogue {
		if _, ok := seen[e.MIME]; ok {
			continue
		}
		seen[e.MIME] = struct{}{}
		out = append(out, e.MIME)
	}
	return out
}

// IsSupportedExtension reports whether ext is a member of the catalogue.
func IsSupportedExtension(ext string) bool {
	_, ok := supportedExtensions[ext]
	return ok
}

// IsSupportedMIMEType reports whether mime is a member of the catalogue.
func IsSupportedMIMEType(mime string) bool {
	_, ok := supportedMIMETypes[mime]
	return ok
}
