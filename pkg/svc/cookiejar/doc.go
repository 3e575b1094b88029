// Package cookiejar inspects Netscape-format cookie files, the format read by
// yt-dlp's --cookies option.
//
// Inspection is advisory: a jar with expired or missing sign-in cookies is still
// written, but the findings are surfaced as warnings at startup.
package cookiejar
