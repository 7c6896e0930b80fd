/*
Package ddsview parses DirectDraw Surface (DDS) containers held in memory and
exposes zero-copy views of their pixel payload.

Parse validates the magic, the fixed 124-byte header and the pixel format,
then re-derives the full mip chain (or six face chains for cube maps) from
the dimensions and cross-checks it against the buffer length. Only after that
does it hand out a Texture whose Data aliases the caller's buffer.

Texture.MipLevel, Texture.CubeFace and Texture.Surfaces locate individual
sub-images. Every returned Surface is a bounds-checked sub-slice; nothing is
copied and nothing outlives the caller's buffer except through those slices.

Supported encodings are DXT1, DXT3, DXT5, 24-bit BGR, 32-bit BGRA and
luminance/alpha. Volume textures are detected but their slices are not
addressed.
*/
package ddsview
