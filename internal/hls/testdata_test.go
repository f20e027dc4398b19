package hls

const testMediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXTINF:9.009,
segment1.ts
#EXTINF:3.003,
segment2.ts
#EXT-X-ENDLIST
`

const testLivePlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:123456
#EXTINF:10.0,
https://cdn.example.com/live/123456.ts
#EXTINF:10.0,
https://cdn.example.com/live/123457.ts
#EXTINF:10.0,
https://cdn.example.com/live/123458.ts
`

const testMasterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=852x480
480p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2560000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=1280x720
720p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=5120000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=1920x1080
1080p.m3u8
`

const testDiscontinuityPlaylist = `#EXTM3U
#EXT-X-TARGETDURATION:6
#EXT-X-DISCONTINUITY-SEQUENCE:4
#EXTINF:6.0,Main content, part 1
#EXT-X-BYTERANGE:75232@0
main1.ts
#EXT-X-DISCONTINUITY
#EXTINF:4.5,Ad
/ads/ad1.ts
#EXTINF:6.0,
main2.ts
#EXT-X-ENDLIST
`
